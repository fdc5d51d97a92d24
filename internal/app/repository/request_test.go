package repository

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ds.User{},
		&ds.Child{},
		&ds.ChildGuardian{},
		&ds.Request{},
		&ds.RequestChild{},
		&ds.Consultation{},
		&ds.GrowthRecord{},
		&ds.Post{},
		&ds.Comment{},
		&ds.MembershipPlan{},
		&ds.Subscription{},
	))
	return New(db), db
}

func seedRequestUsers(t *testing.T, db *gorm.DB) (member, doctor *ds.User) {
	t.Helper()
	member = &ds.User{Login: "member", Password: "x", Role: ds.RoleMember}
	doctor = &ds.User{Login: "doctor", Password: "x", Role: ds.RoleDoctor}
	require.NoError(t, db.Create(member).Error)
	require.NoError(t, db.Create(doctor).Error)
	return member, doctor
}

func TestCreateRequestKeepsChildOrder(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	var childIDs []uint
	for i := 0; i < 3; i++ {
		c := ds.Child{Name: fmt.Sprintf("child-%d", i)}
		require.NoError(t, db.Create(&c).Error)
		childIDs = append(childIDs, c.ID)
	}
	// порядок в запросе не совпадает с порядком вставки детей
	ordered := []uint{childIDs[2], childIDs[0], childIDs[1]}

	req := &ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: "checkup", Status: ds.StatusPending}
	require.NoError(t, repo.CreateRequest(req, ordered))

	got, err := repo.GetRequestByID(req.ID, false)
	require.NoError(t, err)
	require.Len(t, got.ChildLinks, 3)
	for i, link := range got.ChildLinks {
		assert.Equal(t, ordered[i], link.ChildID)
		assert.Equal(t, i, link.Position)
	}
	assert.Equal(t, member.ID, got.Member.ID)
	assert.Equal(t, doctor.ID, got.Doctor.ID)
}

func TestGetRequestByIDNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.GetRequestByID(42, false)
	assert.True(t, apperr.IsCode(err, http.StatusNotFound), "got %v", err)
}

func TestListRequestsPagination(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	for i := 0; i < 25; i++ {
		req := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: fmt.Sprintf("request %02d", i), Status: ds.StatusPending}
		require.NoError(t, db.Create(&req).Error)
	}

	page1, total, err := repo.ListRequests(RequestFilter{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, page1, 10)

	// последняя страница содержит остаток
	page3, total, err := repo.ListRequests(RequestFilter{Page: 3, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, page3, 5)

	// за пределами данных пусто, total не меняется
	page4, total, err := repo.ListRequests(RequestFilter{Page: 4, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, page4)
}

func TestListRequestsFilters(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)
	other := &ds.User{Login: "other", Password: "x", Role: ds.RoleMember}
	require.NoError(t, db.Create(other).Error)

	seed := []ds.Request{
		{MemberID: member.ID, DoctorID: doctor.ID, Title: "Weight concern", Status: ds.StatusPending},
		{MemberID: member.ID, DoctorID: doctor.ID, Title: "Sleep schedule", Status: ds.StatusAccepted},
		{MemberID: other.ID, DoctorID: doctor.ID, Title: "weight chart review", Status: ds.StatusRejected},
		{MemberID: other.ID, DoctorID: doctor.ID, Title: "Feeding", Status: ds.StatusPending, IsDeleted: true},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	// поиск по подстроке без учета регистра
	got, total, err := repo.ListRequests(RequestFilter{Search: "WEIGHT", Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 2)

	// фильтр по статусу тоже регистронезависимый
	got, total, err = repo.ListRequests(RequestFilter{Status: "pend", Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// по участнику
	mid := member.ID
	_, total, err = repo.ListRequests(RequestFilter{MemberID: &mid, Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// удаленные видны только с IncludeDeleted
	_, total, err = repo.ListRequests(RequestFilter{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	_, total, err = repo.ListRequests(RequestFilter{IncludeDeleted: true, Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}

func TestListRequestsOrder(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		req := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: fmt.Sprintf("r%d", i), Status: ds.StatusPending}
		require.NoError(t, db.Create(&req).Error)
		require.NoError(t, db.Model(&req).UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	asc, _, err := repo.ListRequests(RequestFilter{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "r0", asc[0].Title)

	desc, _, err := repo.ListRequests(RequestFilter{Page: 1, Size: 10, OrderDesc: true})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, "r2", desc[0].Title)
}

func TestUpdateRequestStatusConditional(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	req := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: "race", Status: ds.StatusPending}
	require.NoError(t, db.Create(&req).Error)

	require.NoError(t, repo.UpdateRequestStatus(req.ID, ds.StatusPending, ds.StatusAccepted))

	// второй переход с устаревшим from не затрагивает строк
	err := repo.UpdateRequestStatus(req.ID, ds.StatusPending, ds.StatusRejected)
	assert.True(t, apperr.IsCode(err, http.StatusBadRequest), "got %v", err)

	got, err := repo.GetRequestByID(req.ID, false)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusAccepted, got.Status)
}

func TestUpdateRequestStatusSkipsDeleted(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	req := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: "gone", Status: ds.StatusPending, IsDeleted: true}
	require.NoError(t, db.Create(&req).Error)

	err := repo.UpdateRequestStatus(req.ID, ds.StatusPending, ds.StatusAccepted)
	assert.True(t, apperr.IsCode(err, http.StatusBadRequest), "got %v", err)
}

func TestSoftDeleteRequest(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	req := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: "bye", Status: ds.StatusPending}
	require.NoError(t, db.Create(&req).Error)

	require.NoError(t, repo.SoftDeleteRequest(req.ID))

	// повторное удаление не находит строк
	err := repo.SoftDeleteRequest(req.ID)
	assert.True(t, apperr.IsCode(err, http.StatusNotFound), "got %v", err)

	_, err = repo.GetRequestByID(req.ID, false)
	assert.True(t, apperr.IsCode(err, http.StatusNotFound), "got %v", err)

	got, err := repo.GetRequestByID(req.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestCountRequestsCreatedBetween(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	now := time.Now()
	times := []time.Time{
		now.Add(-2 * time.Hour),
		now.Add(-time.Hour),
		now.Add(-25 * time.Hour), // за пределами окна
	}
	for i, ts := range times {
		req := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: fmt.Sprintf("c%d", i), Status: ds.StatusPending}
		require.NoError(t, db.Create(&req).Error)
		require.NoError(t, db.Model(&req).UpdateColumn("created_at", ts).Error)
	}

	count, err := repo.CountRequestsCreatedBetween(member.ID, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountRequestsCreatedBetween(doctor.ID, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStaleSweepIdempotent(t *testing.T) {
	repo, db := newTestRepo(t)
	member, doctor := seedRequestUsers(t, db)

	old := time.Now().AddDate(0, 0, -20)
	stale := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: "stale", Status: ds.StatusPending}
	fresh := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: "fresh", Status: ds.StatusPending}
	accepted := ds.Request{MemberID: member.ID, DoctorID: doctor.ID, Title: "old accepted", Status: ds.StatusAccepted}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&fresh).Error)
	require.NoError(t, db.Create(&accepted).Error)
	require.NoError(t, db.Model(&stale).UpdateColumn("created_at", old).Error)
	require.NoError(t, db.Model(&accepted).UpdateColumn("created_at", old).Error)

	cutoff := time.Now().AddDate(0, 0, -14)
	ids, err := repo.StalePendingRequestIDs(cutoff)
	require.NoError(t, err)
	require.Equal(t, []uint{stale.ID}, ids)

	affected, err := repo.CancelRequests(ids)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err := repo.GetRequestByID(stale.ID, false)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusCanceled, got.Status)

	// повторный проход ничего не находит и не трогает
	ids, err = repo.StalePendingRequestIDs(cutoff)
	require.NoError(t, err)
	assert.Empty(t, ids)

	affected, err = repo.CancelRequests(ids)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
