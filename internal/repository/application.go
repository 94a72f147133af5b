package repository

import (
	"context"

	"job-board/internal/domain"
)

// ApplicationRepository manages job applications.
type ApplicationRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)
	ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error)
	Delete(ctx context.Context, id string) error
}
