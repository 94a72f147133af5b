package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"job-board/internal/apperr"
	"job-board/internal/auth"
	"job-board/internal/domain"
	"job-board/internal/repository"
)

const (
	msgJobNotFound      = "Job not found!"
	msgNotYourJob       = "You can only manage your own jobs."
	msgFullJobDetails   = "Please provide full job details."
	msgSalaryMissing    = "Please either provide fixed salary or ranged salary."
	msgSalaryBoth       = "Cannot Enter Fixed and Ranged Salary together."
	msgSalaryMinDigits  = "Salary must contain at least 4 digits"
	msgSalaryMaxDigits  = "Salary cannot exceed 9 digits"
	msgSalaryRangeOrder = "Salary From cannot be greater than Salary To."

	minSalary = 1_000
	maxSalary = 999_999_999
)

var jobMessages = fieldMessages{
	"title.min":       "Title must contain at least 3 Characters!",
	"title.max":       "Title cannot exceed 30 Characters!",
	"description.min": "Description must contain at least 30 Characters!",
	"description.max": "Description cannot exceed 500 Characters!",
	"location.min":    "Location must contain at least 20 characters!",
}

// PostJobInput carries the fields of a new job posting. Exactly one of
// FixedSalary or the SalaryFrom/SalaryTo pair must be set.
type PostJobInput struct {
	Title       string `json:"title" validate:"required,min=3,max=30"`
	Description string `json:"description" validate:"required,min=30,max=500"`
	Category    string `json:"category" validate:"required"`
	Country     string `json:"country" validate:"required"`
	City        string `json:"city" validate:"required"`
	Location    string `json:"location" validate:"required,min=20"`
	FixedSalary *int64 `json:"fixedSalary"`
	SalaryFrom  *int64 `json:"salaryFrom"`
	SalaryTo    *int64 `json:"salaryTo"`
}

// JobService manages job postings.
type JobService interface {
	Post(ctx context.Context, employer *domain.User, in PostJobInput) (*domain.Job, error)
	List(ctx context.Context) ([]domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	// ListMine returns every job the employer posted, expired ones included.
	ListMine(ctx context.Context, employer *domain.User) ([]domain.Job, error)
	// Expire closes one of the employer's jobs to new applications.
	Expire(ctx context.Context, employer *domain.User, id string) (*domain.Job, error)
}

type jobService struct {
	jobs repository.JobRepository
	log  logrus.FieldLogger
}

func NewJobService(jobs repository.JobRepository, log logrus.FieldLogger) JobService {
	return &jobService{jobs: jobs, log: log}
}

func (s *jobService) Post(ctx context.Context, employer *domain.User, in PostJobInput) (*domain.Job, error) {
	if err := auth.Authorize(employer.Role, auth.OpPostJob); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Country = strings.TrimSpace(in.Country)
	in.City = strings.TrimSpace(in.City)
	in.Location = strings.TrimSpace(in.Location)
	if err := check(in, msgFullJobDetails, jobMessages); err != nil {
		return nil, err
	}
	if err := checkSalary(in.FixedSalary, in.SalaryFrom, in.SalaryTo); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Country:     in.Country,
		City:        in.City,
		Location:    in.Location,
		FixedSalary: in.FixedSalary,
		SalaryFrom:  in.SalaryFrom,
		SalaryTo:    in.SalaryTo,
		PostedBy:    employer.ID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperr.Internal("create job", err)
	}

	s.log.WithFields(logrus.Fields{"job_id": job.ID, "employer_id": employer.ID}).Info("job posted")
	return job, nil
}

func (s *jobService) List(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.jobs.List(ctx, repository.JobFilter{})
	if err != nil {
		return nil, apperr.Internal("list jobs", err)
	}
	return jobs, nil
}

func (s *jobService) ListMine(ctx context.Context, employer *domain.User) ([]domain.Job, error) {
	if err := auth.Authorize(employer.Role, auth.OpManageJobs); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.List(ctx, repository.JobFilter{PostedBy: employer.ID, IncludeExpired: true})
	if err != nil {
		return nil, apperr.Internal("list employer jobs", err)
	}
	return jobs, nil
}

func (s *jobService) Expire(ctx context.Context, employer *domain.User, id string) (*domain.Job, error) {
	if err := auth.Authorize(employer.Role, auth.OpManageJobs); err != nil {
		return nil, err
	}
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != employer.ID {
		return nil, apperr.Forbidden(msgNotYourJob)
	}
	if job.Expired {
		return job, nil
	}

	if err := s.jobs.SetExpired(ctx, job.ID, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgJobNotFound)
		}
		return nil, apperr.Internal("expire job", err)
	}
	job.Expired = true

	s.log.WithFields(logrus.Fields{"job_id": job.ID, "employer_id": employer.ID}).Info("job expired")
	return job, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.NotFound(msgJobNotFound)
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgJobNotFound)
		}
		return nil, apperr.Internal("get job", err)
	}
	return job, nil
}

func checkSalary(fixed, from, to *int64) error {
	ranged := from != nil || to != nil
	switch {
	case fixed == nil && !ranged:
		return apperr.Validation(msgSalaryMissing)
	case fixed != nil && ranged:
		return apperr.Validation(msgSalaryBoth)
	case ranged && (from == nil || to == nil):
		return apperr.Validation(msgSalaryMissing)
	}

	for _, v := range []*int64{fixed, from, to} {
		if v == nil {
			continue
		}
		if *v < minSalary {
			return apperr.Validation(msgSalaryMinDigits)
		}
		if *v > maxSalary {
			return apperr.Validation(msgSalaryMaxDigits)
		}
	}
	if ranged && *from > *to {
		return apperr.Validation(msgSalaryRangeOrder)
	}
	return nil
}
