package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository stores job applications.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const selectApplications = `
SELECT id, name, email, cover_letter, phone, address, resume_key, resume_url, applicant_id, employer_id, job_id, created_at
FROM applications`

func (r *ApplicationRepository) Init(ctx context.Context) error {
	return execAll(ctx, r.pool,
		`CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			cover_letter TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			resume_key TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL,
			applicant_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			employer_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			job_id TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS applications_applicant_idx ON applications (applicant_id);`,
		`CREATE INDEX IF NOT EXISTS applications_employer_idx ON applications (employer_id);`,
	)
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (id, name, email, cover_letter, phone, address, resume_key, resume_url, applicant_id, employer_id, job_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.Name, app.Email, app.CoverLetter, app.Phone, app.Address,
		app.Resume.Key, app.Resume.URL, app.ApplicantID, app.EmployerID, app.JobID, app.CreatedAt,
	)
	if err != nil {
		return mapError(err, "insert application")
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := scanApplication(r.pool.QueryRow(ctx, selectApplications+` WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "select application")
	}
	return app, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return r.list(ctx, ` WHERE applicant_id = $1`, applicantID)
}

func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	return r.list(ctx, ` WHERE employer_id = $1`, employerID)
}

func (r *ApplicationRepository) list(ctx context.Context, where, arg string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, selectApplications+where+` ORDER BY created_at DESC, id`, arg)
	if err != nil {
		return nil, mapError(err, "query applications")
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, mapError(err, "scan application")
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete application")
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	if err := row.Scan(
		&app.ID, &app.Name, &app.Email, &app.CoverLetter, &app.Phone, &app.Address,
		&app.Resume.Key, &app.Resume.URL, &app.ApplicantID, &app.EmployerID, &app.JobID, &app.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}
