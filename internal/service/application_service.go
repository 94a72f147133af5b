package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"job-board/internal/apperr"
	"job-board/internal/auth"
	"job-board/internal/domain"
	"job-board/internal/repository"
	"job-board/internal/storage"
)

const (
	msgResumeRequired     = "Resume File Required!"
	msgResumeType         = "Invalid file type. Please upload a PNG file."
	msgResumeUpload       = "Failed to upload Resume"
	msgFillAllFields      = "Please fill all fields."
	msgApplicationMissing = "Application not found!"
	msgNotYourApplication = "You can only delete your own applications."

	// sniffLen matches mimetype's default read limit.
	sniffLen = 3072
)

var allowedResumeTypes = []string{"image/png", "image/jpeg", "image/webp"}

var applicationMessages = fieldMessages{
	"name.min":    "Name must contain at least 3 Characters!",
	"name.max":    "Name cannot exceed 30 Characters!",
	"email.email": "Please provide a valid Email!",
	"phone.phone": "Please provide a valid Phone Number!",
}

// ResumeFile is an uploaded résumé waiting to be stored.
type ResumeFile struct {
	Filename string
	Body     io.Reader
}

// SubmitApplicationInput carries the fields of an application form.
type SubmitApplicationInput struct {
	Name        string `json:"name" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	CoverLetter string `json:"coverLetter" validate:"required"`
	Phone       string `json:"phone" validate:"required,phone"`
	Address     string `json:"address" validate:"required"`
	JobID       string `json:"jobId"`
}

// ApplicationConfig tunes application handling.
type ApplicationConfig struct {
	KeyPrefix string
	// EnforceOwnership restricts deletes to the applicant who submitted.
	EnforceOwnership bool
}

// ApplicationService handles job applications.
type ApplicationService interface {
	Submit(ctx context.Context, seeker *domain.User, in SubmitApplicationInput, resume *ResumeFile) (*domain.Application, error)
	ListForEmployer(ctx context.Context, employer *domain.User) ([]domain.Application, error)
	ListForSeeker(ctx context.Context, seeker *domain.User) ([]domain.Application, error)
	Delete(ctx context.Context, seeker *domain.User, id string) error
}

type applicationService struct {
	apps    repository.ApplicationRepository
	jobs    repository.JobRepository
	storage storage.Service
	cfg     ApplicationConfig
	log     logrus.FieldLogger
}

func NewApplicationService(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	store storage.Service,
	cfg ApplicationConfig,
	log logrus.FieldLogger,
) ApplicationService {
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &applicationService{
		apps:    apps,
		jobs:    jobs,
		storage: store,
		cfg:     cfg,
		log:     log,
	}
}

func (s *applicationService) Submit(ctx context.Context, seeker *domain.User, in SubmitApplicationInput, resume *ResumeFile) (*domain.Application, error) {
	if err := auth.Authorize(seeker.Role, auth.OpSubmitApplication); err != nil {
		return nil, err
	}
	if resume == nil || resume.Body == nil {
		return nil, apperr.Validation(msgResumeRequired)
	}

	mime, body, err := sniff(resume.Body)
	if err != nil {
		return nil, apperr.Internal("read resume", err)
	}
	if !mimetype.EqualsAny(mime.String(), allowedResumeTypes...) {
		return nil, apperr.Validation(msgResumeType)
	}

	job, err := s.openJob(ctx, strings.TrimSpace(in.JobID))
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if err := check(in, msgFillAllFields, applicationMessages); err != nil {
		return nil, err
	}

	key := s.resumeKey(seeker.ID, mime.Extension())
	obj, err := s.storage.Upload(ctx, storage.UploadInput{
		Key:         key,
		Body:        body,
		ContentType: mime.String(),
	})
	if err != nil {
		return nil, apperr.Internal(msgResumeUpload, err)
	}

	app := &domain.Application{
		Name:        in.Name,
		Email:       in.Email,
		CoverLetter: in.CoverLetter,
		Phone:       in.Phone,
		Address:     in.Address,
		Resume:      domain.Resume{Key: obj.Key, URL: obj.URL},
		ApplicantID: seeker.ID,
		EmployerID:  job.PostedBy,
		JobID:       job.ID,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if delErr := s.storage.Delete(ctx, obj.Key); delErr != nil {
			s.log.WithError(delErr).WithField("key", obj.Key).Warn("remove orphaned resume")
		}
		return nil, apperr.Internal("create application", err)
	}

	s.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"applicant_id":   app.ApplicantID,
		"resume_name":    resume.Filename,
		"resume_bytes":   obj.Size,
	}).Info("application submitted")
	return app, nil
}

func (s *applicationService) ListForEmployer(ctx context.Context, employer *domain.User) ([]domain.Application, error) {
	if err := auth.Authorize(employer.Role, auth.OpListEmployerApplications); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, apperr.Internal("list employer applications", err)
	}
	return apps, nil
}

func (s *applicationService) ListForSeeker(ctx context.Context, seeker *domain.User) ([]domain.Application, error) {
	if err := auth.Authorize(seeker.Role, auth.OpListSeekerApplications); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByApplicant(ctx, seeker.ID)
	if err != nil {
		return nil, apperr.Internal("list seeker applications", err)
	}
	return apps, nil
}

func (s *applicationService) Delete(ctx context.Context, seeker *domain.User, id string) error {
	if err := auth.Authorize(seeker.Role, auth.OpDeleteApplication); err != nil {
		return err
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgApplicationMissing)
		}
		return apperr.Internal("get application", err)
	}
	if s.cfg.EnforceOwnership && app.ApplicantID != seeker.ID {
		return apperr.Forbidden(msgNotYourApplication)
	}

	if err := s.apps.Delete(ctx, app.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgApplicationMissing)
		}
		return apperr.Internal("delete application", err)
	}

	if app.Resume.Key != "" {
		if err := s.storage.Delete(ctx, app.Resume.Key); err != nil {
			s.log.WithError(err).WithField("key", app.Resume.Key).Warn("delete resume object")
		}
	}
	s.log.WithFields(logrus.Fields{"application_id": app.ID, "deleted_by": seeker.ID}).Info("application deleted")
	return nil
}

// openJob returns the job an application targets. Missing and expired
// jobs are reported the same way.
func (s *applicationService) openJob(ctx context.Context, id string) (*domain.Job, error) {
	if id == "" {
		return nil, apperr.NotFound(msgJobNotFound)
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgJobNotFound)
		}
		return nil, apperr.Internal("get job", err)
	}
	if job.Expired {
		return nil, apperr.NotFound(msgJobNotFound)
	}
	return job, nil
}

func (s *applicationService) resumeKey(applicantID, ext string) string {
	name := uuid.NewString() + ext
	if s.cfg.KeyPrefix == "" {
		return path.Join(applicantID, name)
	}
	return path.Join(s.cfg.KeyPrefix, applicantID, name)
}

// sniff detects the content type from the head of r and returns a reader
// that still yields the complete stream.
func sniff(r io.Reader) (*mimetype.MIME, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("read head: %w", err)
	}
	head = head[:n]
	return mimetype.Detect(head), io.MultiReader(bytes.NewReader(head), r), nil
}
