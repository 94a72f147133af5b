package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

const createJobsTable = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	country TEXT NOT NULL,
	city TEXT NOT NULL,
	location TEXT NOT NULL,
	fixed_salary INTEGER NULL,
	salary_from INTEGER NULL,
	salary_to INTEGER NULL,
	expired INTEGER NOT NULL DEFAULT 0,
	posted_on DATETIME NOT NULL,
	posted_by TEXT NOT NULL,
	FOREIGN KEY(posted_by) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_jobs_posted_on ON jobs(posted_on);
CREATE INDEX IF NOT EXISTS idx_jobs_posted_by ON jobs(posted_by);
`

const selectJobColumns = `
SELECT id, title, description, category, country, city, location, fixed_salary, salary_from, salary_to, expired, posted_on, posted_by
FROM jobs`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ repository.JobRepository = (*JobRepository)(nil)

func (r *JobRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createJobsTable); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.PostedOn.IsZero() {
		job.PostedOn = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO jobs (id, title, description, category, country, city, location, fixed_salary, salary_from, salary_to, expired, posted_on, posted_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.Title,
		job.Description,
		job.Category,
		job.Country,
		job.City,
		job.Location,
		nullInt(job.FixedSalary),
		nullInt(job.SalaryFrom),
		nullInt(job.SalaryTo),
		job.Expired,
		job.PostedOn.UTC(),
		job.PostedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("job %s: %w", job.ID, repository.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("job poster %s: %w", job.PostedBy, repository.ErrNotFound)
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, selectJobColumns+`
WHERE id = ?`, id)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	var (
		conds []string
		args  []any
	)
	if !filter.IncludeExpired {
		conds = append(conds, "expired = 0")
	}
	if filter.PostedBy != "" {
		conds = append(conds, "posted_by = ?")
		args = append(args, filter.PostedBy)
	}
	query := selectJobColumns
	if len(conds) > 0 {
		query += `
WHERE ` + strings.Join(conds, " AND ")
	}
	query += `
ORDER BY posted_on DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) SetExpired(ctx context.Context, id string, expired bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE jobs SET expired = ? WHERE id = ?`, expired, id)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("job update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanJob(scanner interface {
	Scan(dest ...any) error
}) (*domain.Job, error) {
	var (
		job                         domain.Job
		fixed, salaryFrom, salaryTo sql.NullInt64
	)
	if err := scanner.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.Country,
		&job.City,
		&job.Location,
		&fixed,
		&salaryFrom,
		&salaryTo,
		&job.Expired,
		&job.PostedOn,
		&job.PostedBy,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	job.FixedSalary = intPtr(fixed)
	job.SalaryFrom = intPtr(salaryFrom)
	job.SalaryTo = intPtr(salaryTo)
	return &job, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
