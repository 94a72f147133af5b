package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

const createApplicationsTable = `
CREATE TABLE IF NOT EXISTS applications (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	cover_letter TEXT NOT NULL,
	phone TEXT NOT NULL,
	address TEXT NOT NULL,
	resume_key TEXT NOT NULL DEFAULT '',
	resume_url TEXT NOT NULL,
	applicant_id TEXT NOT NULL,
	employer_id TEXT NOT NULL,
	job_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(applicant_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY(employer_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY(job_id) REFERENCES jobs(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications(applicant_id);
CREATE INDEX IF NOT EXISTS idx_applications_employer ON applications(employer_id);
`

const selectApplicationColumns = `
SELECT id, name, email, cover_letter, phone, address, resume_key, resume_url, applicant_id, employer_id, job_id, created_at
FROM applications`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createApplicationsTable); err != nil {
		return fmt.Errorf("create applications table: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO applications (id, name, email, cover_letter, phone, address, resume_key, resume_url, applicant_id, employer_id, job_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID,
		app.Name,
		app.Email,
		app.CoverLetter,
		app.Phone,
		app.Address,
		app.Resume.Key,
		app.Resume.URL,
		app.ApplicantID,
		app.EmployerID,
		app.JobID,
		app.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("application %s: %w", app.ID, repository.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("application references: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	row := r.db.QueryRowContext(ctx, selectApplicationColumns+`
WHERE id = ?`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return r.list(ctx, `
WHERE applicant_id = ?`, applicantID)
}

func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	return r.list(ctx, `
WHERE employer_id = ?`, employerID)
}

func (r *ApplicationRepository) list(ctx context.Context, where string, arg string) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, selectApplicationColumns+where+`
ORDER BY created_at DESC, rowid DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("application delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanApplication(scanner interface {
	Scan(dest ...any) error
}) (*domain.Application, error) {
	var app domain.Application
	if err := scanner.Scan(
		&app.ID,
		&app.Name,
		&app.Email,
		&app.CoverLetter,
		&app.Phone,
		&app.Address,
		&app.Resume.Key,
		&app.Resume.URL,
		&app.ApplicantID,
		&app.EmployerID,
		&app.JobID,
		&app.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan application: %w", err)
	}
	return &app, nil
}
