package main

import (
	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	// Migrate the schema
	err = db.AutoMigrate(
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
	)
	if err != nil {
		panic("cant migrate db")
	}
}
