package domain

import "time"

// Resume points at an uploaded résumé object.
type Resume struct {
	Key string
	URL string
}

// Application is a job seeker's submission against a job.
type Application struct {
	ID          string
	Name        string
	Email       string
	CoverLetter string
	Phone       string
	Address     string
	Resume      Resume
	ApplicantID string
	EmployerID  string
	JobID       string
	CreatedAt   time.Time
}
