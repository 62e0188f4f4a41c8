package usecase

import (
	"context"
	"errors"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
)

type taxonomyUsecase struct {
	categoryRepo domain.CategoryRepository
	skillRepo    domain.SkillRepository
}

func NewTaxonomyUsecase(categoryRepo domain.CategoryRepository, skillRepo domain.SkillRepository) domain.TaxonomyUsecase {
	return &taxonomyUsecase{
		categoryRepo: categoryRepo,
		skillRepo:    skillRepo,
	}
}

func (u *taxonomyUsecase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return u.categoryRepo.Fetch(ctx)
}

func (u *taxonomyUsecase) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return u.skillRepo.Fetch(ctx)
}

func (u *taxonomyUsecase) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := u.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Category not found")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}
