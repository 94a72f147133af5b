package auth

import (
	"fmt"

	"job-board/internal/apperr"
	"job-board/internal/domain"
)

// Operation names a role-gated business operation.
type Operation int

const (
	OpSubmitApplication Operation = iota + 1
	OpListSeekerApplications
	OpDeleteApplication
	OpListEmployerApplications
	OpPostJob
	OpManageJobs
)

func (o Operation) String() string {
	switch o {
	case OpSubmitApplication:
		return "submit_application"
	case OpListSeekerApplications:
		return "list_seeker_applications"
	case OpDeleteApplication:
		return "delete_application"
	case OpListEmployerApplications:
		return "list_employer_applications"
	case OpPostJob:
		return "post_job"
	case OpManageJobs:
		return "manage_jobs"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

// ForbiddenRole returns the role excluded from op.
func ForbiddenRole(op Operation) (domain.Role, bool) {
	switch op {
	case OpSubmitApplication, OpListSeekerApplications, OpDeleteApplication:
		return domain.RoleEmployer, true
	case OpListEmployerApplications, OpPostJob, OpManageJobs:
		return domain.RoleJobSeeker, true
	}
	return "", false
}

// Authorize decides whether role may perform op. A nil result allows the
// operation; otherwise the error is a Forbidden apperr.Error naming the
// excluded role.
func Authorize(role domain.Role, op Operation) error {
	excluded, ok := ForbiddenRole(op)
	if !ok {
		return apperr.Forbidden(fmt.Sprintf("Operation %s is not permitted.", op))
	}
	if !role.Valid() {
		return apperr.Forbidden("Unknown role not allowed to access this resource.")
	}
	if role == excluded {
		return apperr.Forbidden(fmt.Sprintf("%s not allowed to access this resource.", role))
	}
	return nil
}
