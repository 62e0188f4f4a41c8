package domain

import (
	"context"
	"time"
)

// Application statuses
const (
	ApplicationStatusPending     = "PENDING"
	ApplicationStatusShortlisted = "SHORTLISTED"
	ApplicationStatusAccepted    = "ACCEPTED"
	ApplicationStatusRejected    = "REJECTED"
	ApplicationStatusWithdrawn   = "WITHDRAWN"
)

func IsValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusShortlisted,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// JobApplication is submitted by exactly one freelancer against exactly one
// job; the (job, freelancer) pair is unique. Lifecycle:
//
//	PENDING -> {SHORTLISTED, ACCEPTED, REJECTED, WITHDRAWN}
//	SHORTLISTED -> {ACCEPTED, REJECTED, WITHDRAWN}
//
// ACCEPTED, REJECTED and WITHDRAWN are terminal.
type JobApplication struct {
	ID             int64     `json:"id"`
	JobID          int64     `json:"job_id"`
	FreelancerID   string    `json:"freelancer_id"`
	CoverLetter    string    `json:"cover_letter"`
	ProposedBudget *float64  `json:"proposed_budget,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle       *string `json:"job_title,omitempty"`
	FreelancerName *string `json:"freelancer_name,omitempty"`
}

var applicationTransitions = map[string][]string{
	ApplicationStatusPending: {
		ApplicationStatusShortlisted, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusWithdrawn,
	},
	ApplicationStatusShortlisted: {
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn,
	},
}

// CanTransition reports whether the status machine permits moving to the
// target status. Terminal states permit nothing.
func (a *JobApplication) CanTransition(to string) bool {
	for _, next := range applicationTransitions[a.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// CanWithdraw reports whether the freelancer may still pull the application.
func (a *JobApplication) CanWithdraw() bool {
	return a.Status == ApplicationStatusPending || a.Status == ApplicationStatusShortlisted
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *JobApplication) error
	GetByID(ctx context.Context, id int64) (*JobApplication, error)
	GetByJobID(ctx context.Context, jobID int64) ([]JobApplication, error)
	GetByFreelancerID(ctx context.Context, freelancerID string) ([]JobApplication, error)
	Exists(ctx context.Context, jobID int64, freelancerID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// Accept performs the accept side effects as one transaction: the
	// application becomes ACCEPTED, its job becomes FILLED, and every sibling
	// application still PENDING becomes REJECTED. Applications in any other
	// status are left untouched. Fails without mutating anything when the
	// application is no longer in an acceptable state.
	Accept(ctx context.Context, id int64) error
}

// ApplicationFields is the freelancer-supplied part of a submission.
type ApplicationFields struct {
	CoverLetter    string `validate:"required"`
	ProposedBudget *float64
}

type ApplicationUsecase interface {
	SubmitApplication(ctx context.Context, viewer *Viewer, jobID int64, fields ApplicationFields) (*JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, viewer *Viewer, applicationID int64, newStatus string) (*JobApplication, error)
	WithdrawApplication(ctx context.Context, viewer *Viewer, applicationID int64) (*JobApplication, error)
	GetApplication(ctx context.Context, viewer *Viewer, applicationID int64) (*JobApplication, error)
	ListMyApplications(ctx context.Context, viewer *Viewer) ([]JobApplication, error)
	ListApplicationsForJob(ctx context.Context, viewer *Viewer, jobID int64) ([]JobApplication, error)
}
