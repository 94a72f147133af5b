package domain

import "time"

// Job is a vacancy posted by an employer.
type Job struct {
	ID          string
	Title       string
	Description string
	Category    string
	Country     string
	City        string
	Location    string
	FixedSalary *int64
	SalaryFrom  *int64
	SalaryTo    *int64
	Expired     bool
	PostedOn    time.Time
	PostedBy    string
}
