package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/internal/apperr"
	"job-board/internal/domain"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role    domain.Role
		op      Operation
		allowed bool
	}{
		{domain.RoleJobSeeker, OpSubmitApplication, true},
		{domain.RoleEmployer, OpSubmitApplication, false},
		{domain.RoleJobSeeker, OpListSeekerApplications, true},
		{domain.RoleEmployer, OpListSeekerApplications, false},
		{domain.RoleJobSeeker, OpDeleteApplication, true},
		{domain.RoleEmployer, OpDeleteApplication, false},
		{domain.RoleEmployer, OpListEmployerApplications, true},
		{domain.RoleJobSeeker, OpListEmployerApplications, false},
		{domain.RoleEmployer, OpPostJob, true},
		{domain.RoleJobSeeker, OpPostJob, false},
		{domain.RoleEmployer, OpManageJobs, true},
		{domain.RoleJobSeeker, OpManageJobs, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.op.String(), func(t *testing.T) {
			err := Authorize(tt.role, tt.op)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindForbidden))
			_, msg := apperr.Response(err)
			assert.Equal(t, string(tt.role)+" not allowed to access this resource.", msg)
		})
	}
}

func TestAuthorizeUnknownRoleDenied(t *testing.T) {
	for _, op := range []Operation{OpSubmitApplication, OpListSeekerApplications, OpDeleteApplication, OpListEmployerApplications, OpPostJob, OpManageJobs} {
		err := Authorize(domain.Role("Admin"), op)
		assert.True(t, apperr.Is(err, apperr.KindForbidden), op.String())
	}
}

func TestAuthorizeUnknownOperationDenied(t *testing.T) {
	err := Authorize(domain.RoleEmployer, Operation(99))
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}
