package service

import (
	"net/http"
	"testing"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	first := seedChild(t, db, "first", member.ID)
	second := seedChild(t, db, "second", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{second.ID, first.ID}, "growth check")
	require.NoError(t, err)

	assert.Equal(t, ds.StatusPending, req.Status)
	assert.Equal(t, member.ID, req.MemberID)
	assert.Equal(t, doctor.ID, req.DoctorID)
	// порядок детей сохраняется как в запросе
	require.Len(t, req.ChildLinks, 2)
	assert.Equal(t, second.ID, req.ChildLinks[0].ChildID)
	assert.Equal(t, first.ID, req.ChildLinks[1].ChildID)
}

func TestCreateRequestDailyLimit(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "within limit")
		require.NoError(t, err)
	}

	_, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "over the limit")
	assert.True(t, apperr.IsCode(err, http.StatusBadRequest), "got %v", err)

	// четвертая заявка не сохранилась
	var count int64
	require.NoError(t, db.Model(&ds.Request{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestCreateRequestTargetMustBeDoctor(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	notDoctor := seedUser(t, db, "other", ds.RoleMember)
	child := seedChild(t, db, "kid", member.ID)

	_, err := svc.CreateRequest(member.ID, notDoctor.ID, []uint{child.ID}, "wrong target")
	assert.True(t, apperr.IsCode(err, http.StatusBadRequest), "got %v", err)
}

func TestCreateRequestGuardianshipRequired(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	stranger := seedUser(t, db, "stranger", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	_, err := svc.CreateRequest(stranger.ID, doctor.ID, []uint{child.ID}, "not my child")
	assert.True(t, apperr.IsCode(err, http.StatusForbidden), "got %v", err)

	// транзакция откатилась, в базе пусто
	var count int64
	require.NoError(t, db.Model(&ds.Request{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateRequestUnknownChild(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)

	_, err := svc.CreateRequest(member.ID, doctor.ID, []uint{12345}, "ghost child")
	assert.True(t, apperr.IsCode(err, http.StatusNotFound), "got %v", err)
}

func TestUpdateRequestStatusAccept(t *testing.T) {
	svc, repo, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	updated, err := svc.UpdateRequestStatus(req.ID, doctor.ID, "Accepted")
	require.NoError(t, err)
	assert.Equal(t, ds.StatusAccepted, updated.Status)

	// ровно одна консультация со ссылкой на заявку
	count, err := repo.CountConsultationsByRequest(req.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdateRequestStatusWrongDoctor(t *testing.T) {
	svc, repo, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	otherDoctor := seedUser(t, db, "other-doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	_, err = svc.UpdateRequestStatus(req.ID, otherDoctor.ID, "Accepted")
	assert.True(t, apperr.IsCode(err, http.StatusForbidden), "got %v", err)

	// статус не изменился, консультации нет
	fresh, err := repo.GetRequestByID(req.ID, false)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusPending, fresh.Status)

	count, err := repo.CountConsultationsByRequest(req.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestUpdateRequestStatusNoOp(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	// повтор текущего статуса ошибка для любой роли, включая админа
	admin := seedUser(t, db, "admin", ds.RoleAdmin)
	_, err = svc.UpdateRequestStatus(req.ID, admin.ID, "Pending")
	assert.True(t, apperr.IsCode(err, http.StatusBadRequest), "got %v", err)
}

func TestUpdateRequestStatusCancelByMember(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	updated, err := svc.UpdateRequestStatus(req.ID, member.ID, "canceled")
	require.NoError(t, err)
	assert.Equal(t, ds.StatusCanceled, updated.Status)
}

func TestUpdateRequestStatusTerminal(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	_, err = svc.UpdateRequestStatus(req.ID, doctor.ID, "Rejected")
	require.NoError(t, err)

	// из терминального статуса выхода нет
	_, err = svc.UpdateRequestStatus(req.ID, member.ID, "Canceled")
	assert.True(t, apperr.IsCode(err, http.StatusBadRequest), "got %v", err)
}

func TestUpdateRequestStatusAdminOverride(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	admin := seedUser(t, db, "admin", ds.RoleAdmin)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	updated, err := svc.UpdateRequestStatus(req.ID, admin.ID, "Accepted")
	require.NoError(t, err)
	assert.Equal(t, ds.StatusAccepted, updated.Status)
}

func TestDeleteRequest(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	other := seedUser(t, db, "other", ds.RoleMember)
	admin := seedUser(t, db, "admin", ds.RoleAdmin)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	_, err = svc.DeleteRequest(req.ID, other.ID)
	assert.True(t, apperr.IsCode(err, http.StatusForbidden), "got %v", err)

	deleted, err := svc.DeleteRequest(req.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	// после удаления владелец заявку не видит
	_, err = svc.GetRequest(req.ID, member.ID)
	assert.True(t, apperr.IsCode(err, http.StatusNotFound), "got %v", err)

	// а админ видит
	got, err := svc.GetRequest(req.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestGetRequestVisibility(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	stranger := seedUser(t, db, "stranger", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	req, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
	require.NoError(t, err)

	_, err = svc.GetRequest(req.ID, member.ID)
	assert.NoError(t, err)
	_, err = svc.GetRequest(req.ID, doctor.ID)
	assert.NoError(t, err)

	_, err = svc.GetRequest(req.ID, stranger.ID)
	assert.True(t, apperr.IsCode(err, http.StatusForbidden), "got %v", err)
}

func TestListUserRequests(t *testing.T) {
	svc, _, db := newTestService(t)
	member := seedUser(t, db, "member", ds.RoleMember)
	other := seedUser(t, db, "other", ds.RoleMember)
	doctor := seedUser(t, db, "doctor", ds.RoleDoctor)
	child := seedChild(t, db, "kid", member.ID)

	for i := 0; i < 2; i++ {
		_, err := svc.CreateRequest(member.ID, doctor.ID, []uint{child.ID}, "please review")
		require.NoError(t, err)
	}

	// свои заявки как участник
	page, err := svc.ListUserRequests(member.ID, member.ID, ListQuery{}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	// чужие заявки запрещены
	_, err = svc.ListUserRequests(member.ID, other.ID, ListQuery{}, "")
	assert.True(t, apperr.IsCode(err, http.StatusForbidden), "got %v", err)

	// участник не может притвориться врачом
	_, err = svc.ListUserRequests(member.ID, member.ID, ListQuery{}, "DOCTOR")
	assert.True(t, apperr.IsCode(err, http.StatusForbidden), "got %v", err)

	// врач видит назначенные ему заявки
	docPage, err := svc.ListUserRequests(doctor.ID, doctor.ID, ListQuery{}, "DOCTOR")
	require.NoError(t, err)
	assert.EqualValues(t, 2, docPage.Total)
}
