package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/internal/apperr"
	"job-board/internal/domain"
)

var (
	employer = &domain.User{ID: "emp-1", Name: "Employer", Role: domain.RoleEmployer}
	seeker   = &domain.User{ID: "seek-1", Name: "Seeker", Role: domain.RoleJobSeeker}
)

func i64(v int64) *int64 { return &v }

func validJob() PostJobInput {
	return PostJobInput{
		Title:       "Go Developer",
		Description: "Design and build backend services for our hiring platform.",
		Category:    "Engineering",
		Country:     "Latvia",
		City:        "Riga",
		Location:    "Brivibas iela 100, Riga, Latvia",
		SalaryFrom:  i64(2500),
		SalaryTo:    i64(4000),
	}
}

func TestJobPost(t *testing.T) {
	log, _ := newTestLogger()
	repo := newFakeJobRepo()
	svc := NewJobService(repo, log)

	job, err := svc.Post(context.Background(), employer, validJob())
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, employer.ID, job.PostedBy)
	assert.False(t, job.PostedOn.IsZero())

	got, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Title, got.Title)

	jobs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestJobPostForbiddenForSeeker(t *testing.T) {
	log, _ := newTestLogger()
	svc := NewJobService(newFakeJobRepo(), log)

	_, err := svc.Post(context.Background(), seeker, validJob())
	assertAppErr(t, err, apperr.KindForbidden, "Job Seeker not allowed to access this resource.")
}

func TestJobPostValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostJobInput)
		msg    string
	}{
		{"missing city", func(in *PostJobInput) { in.City = "" }, "Please provide full job details."},
		{"short description", func(in *PostJobInput) { in.Description = "too short" }, "Description must contain at least 30 Characters!"},
		{"short location", func(in *PostJobInput) { in.Location = "Riga" }, "Location must contain at least 20 characters!"},
		{"no salary", func(in *PostJobInput) { in.SalaryFrom, in.SalaryTo = nil, nil }, "Please either provide fixed salary or ranged salary."},
		{"half range", func(in *PostJobInput) { in.SalaryTo = nil }, "Please either provide fixed salary or ranged salary."},
		{"fixed and range", func(in *PostJobInput) { in.FixedSalary = i64(3000) }, "Cannot Enter Fixed and Ranged Salary together."},
		{"too few digits", func(in *PostJobInput) { in.SalaryFrom = i64(999) }, "Salary must contain at least 4 digits"},
		{"too many digits", func(in *PostJobInput) { in.SalaryTo = i64(1_000_000_000) }, "Salary cannot exceed 9 digits"},
		{"inverted range", func(in *PostJobInput) { in.SalaryFrom, in.SalaryTo = i64(5000), i64(4000) }, "Salary From cannot be greater than Salary To."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := newTestLogger()
			svc := NewJobService(newFakeJobRepo(), log)
			in := validJob()
			tt.mutate(&in)
			_, err := svc.Post(context.Background(), employer, in)
			assertAppErr(t, err, apperr.KindValidation, tt.msg)
		})
	}
}

func TestJobPostFixedSalary(t *testing.T) {
	log, _ := newTestLogger()
	svc := NewJobService(newFakeJobRepo(), log)
	in := validJob()
	in.SalaryFrom, in.SalaryTo, in.FixedSalary = nil, nil, i64(50000)

	job, err := svc.Post(context.Background(), employer, in)
	require.NoError(t, err)
	require.NotNil(t, job.FixedSalary)
	assert.EqualValues(t, 50000, *job.FixedSalary)
}

func TestJobGetNotFound(t *testing.T) {
	log, _ := newTestLogger()
	svc := NewJobService(newFakeJobRepo(), log)

	_, err := svc.Get(context.Background(), "missing")
	assertAppErr(t, err, apperr.KindNotFound, "Job not found!")
	_, err = svc.Get(context.Background(), "")
	assertAppErr(t, err, apperr.KindNotFound, "Job not found!")
}

func TestJobExpire(t *testing.T) {
	log, _ := newTestLogger()
	repo := newFakeJobRepo()
	svc := NewJobService(repo, log)
	ctx := context.Background()

	job, err := svc.Post(ctx, employer, validJob())
	require.NoError(t, err)

	expired, err := svc.Expire(ctx, employer, job.ID)
	require.NoError(t, err)
	assert.True(t, expired.Expired)

	open, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	mine, err := svc.ListMine(ctx, employer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Expired)

	again, err := svc.Expire(ctx, employer, job.ID)
	require.NoError(t, err)
	assert.True(t, again.Expired)
}

func TestJobExpireErrors(t *testing.T) {
	log, _ := newTestLogger()
	repo := newFakeJobRepo()
	svc := NewJobService(repo, log)
	ctx := context.Background()

	job, err := svc.Post(ctx, employer, validJob())
	require.NoError(t, err)

	_, err = svc.Expire(ctx, seeker, job.ID)
	assertAppErr(t, err, apperr.KindForbidden, "Job Seeker not allowed to access this resource.")

	rival := &domain.User{ID: "emp-2", Role: domain.RoleEmployer}
	_, err = svc.Expire(ctx, rival, job.ID)
	assertAppErr(t, err, apperr.KindForbidden, "You can only manage your own jobs.")

	_, err = svc.Expire(ctx, employer, "missing")
	assertAppErr(t, err, apperr.KindNotFound, "Job not found!")

	_, err = svc.ListMine(ctx, seeker)
	assertAppErr(t, err, apperr.KindForbidden, "Job Seeker not allowed to access this resource.")

	got, err := svc.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.False(t, got.Expired)
}
