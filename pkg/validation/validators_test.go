package validation_test

import (
	"testing"

	"go-marketplace-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Web Development":   "web-development",
		"Go":                "go",
		"C++ / Systems":     "c-systems",
		"  Data  Science  ": "data-science",
		"UI/UX Design":      "ui-ux-design",
		"---":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, validation.Slugify(in), in)
	}
}

func TestSlugValidator(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type payload struct {
		Slug string `validate:"slug"`
	}

	assert.NoError(t, v.Struct(payload{Slug: "web-development"}))
	assert.NoError(t, v.Struct(payload{Slug: ""})) // optional unless required
	assert.Error(t, v.Struct(payload{Slug: "Web Development"}))
	assert.Error(t, v.Struct(payload{Slug: "-leading"}))
}
