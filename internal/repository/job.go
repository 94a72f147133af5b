package repository

import (
	"context"

	"job-board/internal/domain"
)

// JobFilter narrows a job listing.
type JobFilter struct {
	// PostedBy limits the listing to one employer's jobs when set.
	PostedBy       string
	IncludeExpired bool
}

// JobRepository exposes persistence operations for posted jobs.
type JobRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns jobs matching filter, newest first.
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	SetExpired(ctx context.Context, id string, expired bool) error
}
