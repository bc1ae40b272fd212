package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsUnknownValues(t *testing.T) {
	_, err := ParseUserRole("SUPERUSER")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseUserStatus("SLEEPING")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParsePropertyStatus("HAUNTED")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseBookingStatus("MAYBE")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseComplaintType("WEATHER")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseAcceptsKnownValues(t *testing.T) {
	role, err := ParseUserRole("HOST")
	require.NoError(t, err)
	assert.Equal(t, RoleHost, role)

	status, err := ParseBookingStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, status)

	ctype, err := ParseComplaintType("SAFETY")
	require.NoError(t, err)
	assert.Equal(t, ComplaintSafety, ctype)
}

func TestBookingTransitions(t *testing.T) {
	legal := map[BookingStatus][]BookingStatus{
		BookingPending:   {BookingConfirmed, BookingCancelled},
		BookingConfirmed: {BookingCancelled, BookingCompleted},
	}

	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, allowed := range legal[from] {
				if to == allowed {
					want = true
				}
			}
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingActiveAndTerminal(t *testing.T) {
	assert.True(t, BookingPending.IsActive())
	assert.True(t, BookingConfirmed.IsActive())
	assert.False(t, BookingCancelled.IsActive())
	assert.False(t, BookingCompleted.IsActive())

	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingConfirmed.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.True(t, BookingCompleted.IsTerminal())
}
