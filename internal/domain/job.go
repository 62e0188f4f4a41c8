package domain

import (
	"context"
	"errors"
	"time"
)

// Budget/location validation failures, surfaced to callers as validation
// errors with these exact messages.
var (
	ErrBudgetBoth      = errors.New("specify either a fixed budget or a budget range, not both")
	ErrBudgetNone      = errors.New("specify either a fixed budget or a budget range")
	ErrBudgetOrder     = errors.New("minimum budget cannot be greater than maximum budget")
	ErrLocationMissing = errors.New("location is required for on-site jobs")
)

// Job statuses
const (
	JobStatusDraft     = "DRAFT"
	JobStatusPublished = "PUBLISHED"
	JobStatusClosed    = "CLOSED"
	JobStatusFilled    = "FILLED"
	JobStatusExpired   = "EXPIRED"
)

// Experience levels
const (
	ExperienceEntry        = "ENTRY"
	ExperienceIntermediate = "INTERMEDIATE"
	ExperienceExpert       = "EXPERT"
)

func IsValidExperienceLevel(level string) bool {
	switch level {
	case ExperienceEntry, ExperienceIntermediate, ExperienceExpert:
		return true
	}
	return false
}

// Job is a posting owned by exactly one hirer. The owner reference is
// immutable; status moves through the lifecycle below.
//
//	DRAFT -> PUBLISHED -> {CLOSED, FILLED, EXPIRED}
//	CLOSED -> PUBLISHED (reopen)
//
// FILLED and EXPIRED are terminal. Budget is either a fixed price or a
// (min, max) range, never both and never neither; the rule lives in
// ValidateBudget, not in the storage schema.
type Job struct {
	ID              int64      `json:"id"`
	HirerID         string     `json:"hirer_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	CategoryID      *int64     `json:"category_id,omitempty"`
	Skills          []Skill    `json:"skills,omitempty"`
	BudgetMin       *float64   `json:"budget_min,omitempty"`
	BudgetMax       *float64   `json:"budget_max,omitempty"`
	FixedBudget     *float64   `json:"fixed_budget,omitempty"`
	Duration        string     `json:"duration"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	IsRemote        bool       `json:"is_remote"`
	Location        string     `json:"location"`
	ExperienceLevel string     `json:"experience_level"`
	IsPublic        bool       `json:"is_public"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// jobTransitions holds the user-initiated edges of the status machine.
// auto-expire and auto-fill are system edges and are applied elsewhere.
var jobTransitions = map[string][]string{
	JobStatusDraft:     {JobStatusPublished},
	JobStatusPublished: {JobStatusClosed},
	JobStatusClosed:    {JobStatusPublished},
}

// CanTransition reports whether a user-initiated move from -> to is legal.
func (j *Job) CanTransition(to string) bool {
	for _, next := range jobTransitions[j.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// IsExpired reports whether the job deadline has passed at the given time.
func (j *Job) IsExpired(now time.Time) bool {
	return j.Deadline != nil && now.After(*j.Deadline)
}

// ApplyExpiry flips a published job past its deadline to EXPIRED. Idempotent;
// returns true when the status changed. Callers invoke it on every read and
// write path and persist the new status when it reports a change.
func (j *Job) ApplyExpiry(now time.Time) bool {
	if j.Status == JobStatusPublished && j.IsExpired(now) {
		j.Status = JobStatusExpired
		return true
	}
	return false
}

// VisibleTo applies the read rule: owners see their jobs in any status,
// everyone else only public published listings.
func (j *Job) VisibleTo(viewer *Viewer) bool {
	if viewer.IsHirer() && j.HirerID == viewer.ID {
		return true
	}
	return j.Status == JobStatusPublished && j.IsPublic
}

// ValidateBudget enforces the create/update invariant: exactly one of a fixed
// price or a (min and/or max) range, min <= max when both bounds are present,
// and a location on non-remote jobs.
func (j *Job) ValidateBudget() error {
	hasRange := j.BudgetMin != nil || j.BudgetMax != nil
	if j.FixedBudget != nil && hasRange {
		return ErrBudgetBoth
	}
	if j.FixedBudget == nil && !hasRange {
		return ErrBudgetNone
	}
	if j.BudgetMin != nil && j.BudgetMax != nil && *j.BudgetMin > *j.BudgetMax {
		return ErrBudgetOrder
	}
	if !j.IsRemote && j.Location == "" {
		return ErrLocationMissing
	}
	return nil
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Search(ctx context.Context, q JobSearchQuery, limit, offset int) ([]Job, int64, error)
	FetchByHirerID(ctx context.Context, hirerID string, limit, offset int) ([]Job, int64, error)
	FetchByCategoryID(ctx context.Context, categoryID int64, limit, offset int) ([]Job, int64, error)
	// Update persists the job fields and replaces its skill set in one
	// transaction. Create does the same for a new row.
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// JobAction selects which lifecycle edge an update request wants alongside
// the field save.
type JobAction string

const (
	JobActionSave    JobAction = "save"
	JobActionPublish JobAction = "publish"
	JobActionClose   JobAction = "close"
	JobActionReopen  JobAction = "reopen"
)

// JobFields is the mutable subset of a job accepted on create and update.
type JobFields struct {
	Title           string
	Description     string
	CategoryID      *int64
	SkillNames      []string
	BudgetMin       *float64
	BudgetMax       *float64
	FixedBudget     *float64
	Duration        string
	Deadline        *time.Time
	IsRemote        bool
	Location        string
	ExperienceLevel string
	IsPublic        bool
}

type JobUsecase interface {
	CreateJob(ctx context.Context, viewer *Viewer, fields JobFields) (*Job, error)
	UpdateJob(ctx context.Context, viewer *Viewer, jobID int64, fields JobFields, action JobAction) (*Job, error)
	DeleteJob(ctx context.Context, viewer *Viewer, jobID int64) error
	GetJob(ctx context.Context, viewer *Viewer, jobID int64) (*Job, error)
	ListJobs(ctx context.Context, viewer *Viewer, q JobSearchQuery, page, pageSize int) ([]Job, int64, error)
	ListMyJobs(ctx context.Context, viewer *Viewer, page, pageSize int) ([]Job, int64, error)
	ListJobsByCategory(ctx context.Context, categorySlug string, page, pageSize int) ([]Job, int64, error)
}
