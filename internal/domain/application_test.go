package domain_test

import (
	"testing"

	"go-marketplace-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplicationTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{domain.ApplicationStatusPending, domain.ApplicationStatusShortlisted, true},
		{domain.ApplicationStatusPending, domain.ApplicationStatusAccepted, true},
		{domain.ApplicationStatusPending, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusPending, domain.ApplicationStatusWithdrawn, true},
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusAccepted, true},
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusWithdrawn, true},
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusPending, false},
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusPending, false},
		{domain.ApplicationStatusWithdrawn, domain.ApplicationStatusPending, false},
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusWithdrawn, false},
	}

	for _, tc := range cases {
		app := &domain.JobApplication{Status: tc.from}
		assert.Equal(t, tc.allowed, app.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplicationCanWithdraw(t *testing.T) {
	withdrawable := map[string]bool{
		domain.ApplicationStatusPending:     true,
		domain.ApplicationStatusShortlisted: true,
		domain.ApplicationStatusAccepted:    false,
		domain.ApplicationStatusRejected:    false,
		domain.ApplicationStatusWithdrawn:   false,
	}
	for status, want := range withdrawable {
		app := &domain.JobApplication{Status: status}
		assert.Equal(t, want, app.CanWithdraw(), status)
	}
}

func TestViewerCapabilities(t *testing.T) {
	var anon *domain.Viewer
	assert.False(t, anon.IsAuthenticated())
	assert.False(t, anon.IsFreelancer())
	assert.False(t, anon.IsHirer())

	freelancer := &domain.Viewer{ID: "u1", Role: domain.RoleFreelancer}
	assert.True(t, freelancer.IsAuthenticated())
	assert.True(t, freelancer.IsFreelancer())
	assert.False(t, freelancer.IsHirer())

	hirer := &domain.Viewer{ID: "u2", Role: domain.RoleHirer}
	assert.True(t, hirer.IsHirer())
	assert.False(t, hirer.IsFreelancer())
}
