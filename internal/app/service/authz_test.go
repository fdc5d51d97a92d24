package service

import (
	"net/http"
	"testing"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeTransition(t *testing.T) {
	member := &ds.User{ID: 1, Role: ds.RoleMember}
	otherMember := &ds.User{ID: 2, Role: ds.RoleMember}
	doctor := &ds.User{ID: 10, Role: ds.RoleDoctor}
	otherDoctor := &ds.User{ID: 11, Role: ds.RoleDoctor}
	admin := &ds.User{ID: 99, Role: ds.RoleAdmin}

	req := &ds.Request{ID: 5, MemberID: member.ID, DoctorID: doctor.ID, Status: ds.StatusPending}

	cases := []struct {
		name     string
		user     *ds.User
		target   ds.RequestStatus
		wantCode int // 0 = разрешено
	}{
		{"doctor accepts own", doctor, ds.StatusAccepted, 0},
		{"doctor rejects own", doctor, ds.StatusRejected, 0},
		{"doctor cannot cancel", doctor, ds.StatusCanceled, http.StatusForbidden},
		{"other doctor cannot accept", otherDoctor, ds.StatusAccepted, http.StatusForbidden},
		{"member cancels own", member, ds.StatusCanceled, 0},
		{"member cannot accept", member, ds.StatusAccepted, http.StatusForbidden},
		{"member cannot reject", member, ds.StatusRejected, http.StatusForbidden},
		{"other member cannot cancel", otherMember, ds.StatusCanceled, http.StatusForbidden},
		{"admin accepts", admin, ds.StatusAccepted, 0},
		{"admin rejects", admin, ds.StatusRejected, 0},
		{"admin cancels", admin, ds.StatusCanceled, 0},
		{"pending is not a target", doctor, ds.StatusPending, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authorizeTransition(tc.user, req, tc.target)
			if tc.wantCode == 0 {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.IsCode(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestCanViewRequest(t *testing.T) {
	req := &ds.Request{ID: 5, MemberID: 1, DoctorID: 10}

	assert.True(t, canViewRequest(&ds.User{ID: 1, Role: ds.RoleMember}, req))
	assert.True(t, canViewRequest(&ds.User{ID: 10, Role: ds.RoleDoctor}, req))
	assert.True(t, canViewRequest(&ds.User{ID: 77, Role: ds.RoleAdmin}, req))
	assert.False(t, canViewRequest(&ds.User{ID: 2, Role: ds.RoleMember}, req))
	assert.False(t, canViewRequest(&ds.User{ID: 11, Role: ds.RoleDoctor}, req))
}
