package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// TestRepositoriesIntegration runs against a live database.
func TestRepositoriesIntegration(t *testing.T) {
	if os.Getenv("RUN_POSTGRES_INTEGRATION") != "true" {
		t.Skip("set RUN_POSTGRES_INTEGRATION=true to run this integration test")
	}
	_ = godotenv.Load("../../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := Open(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	users := NewUserRepository(pool)
	jobs := NewJobRepository(pool)
	apps := NewApplicationRepository(pool)
	for _, r := range []interface{ Init(context.Context) error }{users, jobs, apps} {
		require.NoError(t, r.Init(ctx))
	}

	suffix := time.Now().UnixNano()
	employer := &domain.User{Name: "Employer", Email: fmt.Sprintf("emp_%d@example.com", suffix), Role: domain.RoleEmployer, PasswordHash: "x"}
	seeker := &domain.User{Name: "Seeker", Email: fmt.Sprintf("seek_%d@example.com", suffix), Role: domain.RoleJobSeeker, PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, employer))
	require.NoError(t, users.Create(ctx, seeker))

	dup := *employer
	dup.ID = ""
	assert.ErrorIs(t, users.Create(ctx, &dup), repository.ErrAlreadyExists)

	fixed := int64(50000)
	job := &domain.Job{
		Title: "Integration", Description: "Integration test job description text.",
		Category: "QA", Country: "LV", City: "Riga", Location: "Somewhere long enough to count",
		FixedSalary: &fixed, PostedBy: employer.ID,
	}
	require.NoError(t, jobs.Create(ctx, job))

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FixedSalary)
	assert.Equal(t, fixed, *got.FixedSalary)
	assert.Nil(t, got.SalaryFrom)

	app := &domain.Application{
		Name: "Seeker", Email: seeker.Email, CoverLetter: "hello", Phone: "123", Address: "street",
		Resume:      domain.Resume{Key: "k", URL: "u"},
		ApplicantID: seeker.ID, EmployerID: employer.ID, JobID: job.ID,
	}
	require.NoError(t, apps.Create(ctx, app))

	list, err := apps.ListByEmployer(ctx, employer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, apps.Delete(ctx, app.ID))
	assert.ErrorIs(t, apps.Delete(ctx, app.ID), repository.ErrNotFound)

	_, err = users.GetByID(ctx, "missing-"+fmt.Sprint(suffix))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
