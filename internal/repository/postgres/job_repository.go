package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

var _ repository.JobRepository = (*JobRepository)(nil)

// JobRepository stores posted jobs.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const selectJobs = `
SELECT id, title, description, category, country, city, location, fixed_salary, salary_from, salary_to, expired, posted_on, posted_by
FROM jobs`

func (r *JobRepository) Init(ctx context.Context) error {
	return execAll(ctx, r.pool,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			country TEXT NOT NULL,
			city TEXT NOT NULL,
			location TEXT NOT NULL,
			fixed_salary BIGINT NULL,
			salary_from BIGINT NULL,
			salary_to BIGINT NULL,
			expired BOOLEAN NOT NULL DEFAULT FALSE,
			posted_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			posted_by TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS jobs_posted_on_idx ON jobs (posted_on DESC);`,
		`CREATE INDEX IF NOT EXISTS jobs_posted_by_idx ON jobs (posted_by);`,
	)
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.PostedOn.IsZero() {
		job.PostedOn = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (id, title, description, category, country, city, location, fixed_salary, salary_from, salary_to, expired, posted_on, posted_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		job.ID, job.Title, job.Description, job.Category, job.Country, job.City, job.Location,
		job.FixedSalary, job.SalaryFrom, job.SalaryTo, job.Expired, job.PostedOn, job.PostedBy,
	)
	if err != nil {
		return mapError(err, "insert job")
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx, selectJobs+` WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "select job")
	}
	return job, nil
}

func (r *JobRepository) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	var (
		conds []string
		args  []any
	)
	if !filter.IncludeExpired {
		conds = append(conds, "NOT expired")
	}
	if filter.PostedBy != "" {
		args = append(args, filter.PostedBy)
		conds = append(conds, fmt.Sprintf("posted_by = $%d", len(args)))
	}
	query := selectJobs
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	rows, err := r.pool.Query(ctx, query+` ORDER BY posted_on DESC, id`, args...)
	if err != nil {
		return nil, mapError(err, "query jobs")
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, mapError(err, "scan job")
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) SetExpired(ctx context.Context, id string, expired bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE jobs SET expired = $1 WHERE id = $2`, expired, id)
	if err != nil {
		return mapError(err, "update job")
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Category, &job.Country, &job.City, &job.Location,
		&job.FixedSalary, &job.SalaryFrom, &job.SalaryTo, &job.Expired, &job.PostedOn, &job.PostedBy,
	); err != nil {
		return nil, err
	}
	return &job, nil
}
