package ds

import (
	"strings"
	"time"
)

// Role закрытый набор ролей пользователя.
type Role string

const (
	RoleMember Role = "Member"
	RoleDoctor Role = "Doctor"
	RoleAdmin  Role = "Admin"
)

// ParseRole разбирает роль без учета регистра.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "member":
		return RoleMember, true
	case "doctor":
		return RoleDoctor, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Login     string    `gorm:"type:varchar(100);unique;not null" json:"login"`
	Password  string    `gorm:"column:password_hash;type:varchar(255)" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;default:Member" json:"role"`
	FullName  string    `gorm:"type:varchar(150)" json:"full_name"`
	IsDeleted bool      `gorm:"type:boolean;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
