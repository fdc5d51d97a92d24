package main

import (
	"fmt"
	"log"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/dsn"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database")
	}

	seedUsers(db)
	seedPlans(db)

	fmt.Println("seeding finished")
}

func seedUsers(db *gorm.DB) {
	users := []struct {
		login    string
		password string
		role     ds.Role
		fullName string
	}{
		{"admin", "admin123", ds.RoleAdmin, "Platform Admin"},
		{"dr.petrova", "doctor123", ds.RoleDoctor, "Anna Petrova"},
		{"dr.smirnov", "doctor123", ds.RoleDoctor, "Ivan Smirnov"},
		{"member1", "member123", ds.RoleMember, "Maria Ivanova"},
	}

	for _, u := range users {
		var existing ds.User
		if err := db.Where("login = ?", u.login).First(&existing).Error; err == nil {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt: %v", err)
		}
		user := ds.User{Login: u.login, Password: string(hashed), Role: u.role, FullName: u.fullName}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("seed user %s: %v", u.login, err)
		}
		fmt.Printf("created user %s (%s)\n", u.login, u.role)
	}
}

func seedPlans(db *gorm.DB) {
	plans := []ds.MembershipPlan{
		{Name: "Basic", MaxChildren: 2, PriceCents: 0, DurationDays: 365, IsActive: true},
		{Name: "Family", MaxChildren: 5, PriceCents: 49900, DurationDays: 365, IsActive: true},
		{Name: "Family Plus", MaxChildren: 10, PriceCents: 89900, DurationDays: 365, IsActive: true},
	}

	for _, p := range plans {
		var existing ds.MembershipPlan
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("seed plan %s: %v", p.Name, err)
		}
		fmt.Printf("created plan %s (max %d children)\n", p.Name, p.MaxChildren)
	}
}
