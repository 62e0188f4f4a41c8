package domain

import "context"

// Freelancer availability
const (
	AvailabilityAvailable   = "AVAILABLE"
	AvailabilityBusy        = "BUSY"
	AvailabilityUnavailable = "UNAVAILABLE"
)

// Hirer company-size buckets
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501+"}

// FreelancerProfile is owned 1:1 by a FREELANCER user and is deleted with it.
type FreelancerProfile struct {
	UserID       string   `json:"user_id"`
	Skills       string   `json:"skills"`     // comma-separated free text
	Experience   string   `json:"experience"` // free text
	PortfolioURL string   `json:"portfolio_url" validate:"omitempty,url"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	Availability string   `json:"availability"`
}

// HirerProfile is owned 1:1 by a HIRER user and is deleted with it.
type HirerProfile struct {
	UserID      string `json:"user_id"`
	CompanyName string `json:"company_name" validate:"max=255"`
	Industry    string `json:"industry" validate:"max=100"`
	CompanySize string `json:"company_size"`
	Website     string `json:"website" validate:"omitempty,url"`
}

// Profile is the role-tagged union over the two profile shapes. Exactly one
// side is populated, keyed by Role, resolved once at the boundary.
type Profile struct {
	Role       string             `json:"role"`
	Freelancer *FreelancerProfile `json:"freelancer,omitempty"`
	Hirer      *HirerProfile      `json:"hirer,omitempty"`
}

type ProfileRepository interface {
	CreateFreelancer(ctx context.Context, p *FreelancerProfile) error
	CreateHirer(ctx context.Context, p *HirerProfile) error
	GetFreelancerByUserID(ctx context.Context, userID string) (*FreelancerProfile, error)
	GetHirerByUserID(ctx context.Context, userID string) (*HirerProfile, error)
	UpdateFreelancer(ctx context.Context, p *FreelancerProfile) error
	UpdateHirer(ctx context.Context, p *HirerProfile) error
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, viewer *Viewer) (*Profile, error)
	UpdateFreelancerProfile(ctx context.Context, viewer *Viewer, p *FreelancerProfile) error
	UpdateHirerProfile(ctx context.Context, viewer *Viewer, p *HirerProfile) error
}
