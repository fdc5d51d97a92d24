package service

import (
	"testing"

	"growthtrack/internal/app/config"
	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		RequestDailyLimit:    3,
		RequestStaleDays:     14,
		ConsultationIdleDays: 30,
		DefaultMaxChildren:   1,
		SweepIntervalMinutes: 60,
	}
}

func newTestService(t *testing.T) (*Service, *repository.Repository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	repo := repository.New(db)
	return New(repo, testConfig()), repo, db
}

func seedUser(t *testing.T, db *gorm.DB, login string, role ds.Role) *ds.User {
	t.Helper()
	u := &ds.User{Login: login, Password: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedChild(t *testing.T, db *gorm.DB, name string, guardianIDs ...uint) *ds.Child {
	t.Helper()
	c := &ds.Child{Name: name}
	require.NoError(t, db.Create(c).Error)
	for _, gid := range guardianIDs {
		require.NoError(t, db.Create(&ds.ChildGuardian{ChildID: c.ID, UserID: gid, Relation: "parent"}).Error)
	}
	return c
}
