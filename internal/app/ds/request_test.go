package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatusTransitions(t *testing.T) {
	all := []RequestStatus{StatusPending, StatusAccepted, StatusRejected, StatusCanceled}

	// из Pending можно в любой другой статус
	for _, next := range []RequestStatus{StatusAccepted, StatusRejected, StatusCanceled} {
		assert.True(t, StatusPending.CanTransitionTo(next), "Pending -> %s", next)
	}

	// повтор текущего статуса запрещен
	for _, s := range all {
		assert.False(t, s.CanTransitionTo(s), "%s -> %s", s, s)
	}

	// терминальные статусы никуда не переходят
	for _, terminal := range []RequestStatus{StatusAccepted, StatusRejected, StatusCanceled} {
		for _, next := range all {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestParseRequestStatus(t *testing.T) {
	cases := map[string]RequestStatus{
		"Pending":  StatusPending,
		"pending":  StatusPending,
		"PENDING":  StatusPending,
		"accepted": StatusAccepted,
		"Rejected": StatusRejected,
		"canceled": StatusCanceled,
		" Canceled ": StatusCanceled,
	}
	for input, want := range cases {
		got, ok := ParseRequestStatus(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "cancelled?", "done", "draft"} {
		_, ok := ParseRequestStatus(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParseRole(t *testing.T) {
	for input, want := range map[string]Role{
		"member": RoleMember,
		"MEMBER": RoleMember,
		"Doctor": RoleDoctor,
		"admin":  RoleAdmin,
	} {
		got, ok := ParseRole(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got)
	}

	_, ok := ParseRole("moderator")
	assert.False(t, ok)
}
