package http

import (
	"time"

	"job-board/internal/domain"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Location    string    `json:"location"`
	FixedSalary *int64    `json:"fixedSalary,omitempty"`
	SalaryFrom  *int64    `json:"salaryFrom,omitempty"`
	SalaryTo    *int64    `json:"salaryTo,omitempty"`
	Expired     bool      `json:"expired"`
	PostedOn    time.Time `json:"jobPostedOn"`
	PostedBy    string    `json:"postedBy"`
}

type ResumeResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ApplicationResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	CoverLetter string         `json:"coverLetter"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	Resume      ResumeResponse `json:"resume"`
	ApplicantID string         `json:"applicantId"`
	EmployerID  string         `json:"employerId"`
	JobID       string         `json:"jobId"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func jobToResponse(j domain.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		Country:     j.Country,
		City:        j.City,
		Location:    j.Location,
		FixedSalary: j.FixedSalary,
		SalaryFrom:  j.SalaryFrom,
		SalaryTo:    j.SalaryTo,
		Expired:     j.Expired,
		PostedOn:    j.PostedOn,
		PostedBy:    j.PostedBy,
	}
}

func applicationToResponse(a domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		CoverLetter: a.CoverLetter,
		Phone:       a.Phone,
		Address:     a.Address,
		Resume:      ResumeResponse{Key: a.Resume.Key, URL: a.Resume.URL},
		ApplicantID: a.ApplicantID,
		EmployerID:  a.EmployerID,
		JobID:       a.JobID,
		CreatedAt:   a.CreatedAt,
	}
}

func applicationsToResponse(apps []domain.Application) []ApplicationResponse {
	resp := make([]ApplicationResponse, len(apps))
	for i := range apps {
		resp[i] = applicationToResponse(apps[i])
	}
	return resp
}
