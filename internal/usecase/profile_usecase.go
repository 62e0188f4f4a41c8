package usecase

import (
	"context"
	"errors"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	validate    *validator.Validate
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		validate:    validate,
	}
}

// GetProfile returns the viewer's own profile, shaped by role.
func (u *profileUsecase) GetProfile(ctx context.Context, viewer *domain.Viewer) (*domain.Profile, error) {
	if !viewer.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	switch viewer.Role {
	case domain.RoleFreelancer:
		p, err := u.profileRepo.GetFreelancerByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, mapProfileErr(err)
		}
		return &domain.Profile{Role: viewer.Role, Freelancer: p}, nil
	case domain.RoleHirer:
		p, err := u.profileRepo.GetHirerByUserID(ctx, viewer.ID)
		if err != nil {
			return nil, mapProfileErr(err)
		}
		return &domain.Profile{Role: viewer.Role, Hirer: p}, nil
	default:
		return nil, apperror.Forbidden("Unknown role")
	}
}

func (u *profileUsecase) UpdateFreelancerProfile(ctx context.Context, viewer *domain.Viewer, p *domain.FreelancerProfile) error {
	if !viewer.IsAuthenticated() {
		return apperror.Unauthorized("User not authenticated")
	}
	if !viewer.IsFreelancer() {
		return apperror.Forbidden("Only freelancers can edit a freelancer profile")
	}

	// Force ownership from the viewer, never from the payload
	p.UserID = viewer.ID

	if p.Availability == "" {
		p.Availability = domain.AvailabilityAvailable
	}
	switch p.Availability {
	case domain.AvailabilityAvailable, domain.AvailabilityBusy, domain.AvailabilityUnavailable:
	default:
		return apperror.BadRequest("Invalid availability status")
	}
	if err := u.validate.Struct(p); err != nil {
		return apperror.BadRequest(err.Error())
	}

	return u.profileRepo.UpdateFreelancer(ctx, p)
}

func (u *profileUsecase) UpdateHirerProfile(ctx context.Context, viewer *domain.Viewer, p *domain.HirerProfile) error {
	if !viewer.IsAuthenticated() {
		return apperror.Unauthorized("User not authenticated")
	}
	if !viewer.IsHirer() {
		return apperror.Forbidden("Only hirers can edit a hirer profile")
	}

	p.UserID = viewer.ID

	if p.CompanySize != "" && !validCompanySize(p.CompanySize) {
		return apperror.BadRequest("Invalid company size")
	}
	if err := u.validate.Struct(p); err != nil {
		return apperror.BadRequest(err.Error())
	}

	return u.profileRepo.UpdateHirer(ctx, p)
}

func validCompanySize(size string) bool {
	for _, s := range domain.CompanySizes {
		if s == size {
			return true
		}
	}
	return false
}

func mapProfileErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Profile not found")
	}
	return err
}
