package domain

import "context"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Fetch(ctx context.Context) ([]Category, error)
}

type SkillRepository interface {
	Fetch(ctx context.Context) ([]Skill, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]Skill, error)
	// GetOrCreate resolves each name to a skill row, creating missing ones
	// with a slug derived from the name.
	GetOrCreate(ctx context.Context, names []string) ([]Skill, error)
}

type TaxonomyUsecase interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListSkills(ctx context.Context) ([]Skill, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
}
