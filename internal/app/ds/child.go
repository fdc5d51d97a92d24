package ds

import "time"

type Child struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	Gender    string    `gorm:"type:varchar(10)" json:"gender"`
	PhotoKey  string    `gorm:"type:varchar(200)" json:"-"`
	PhotoURL  string    `gorm:"type:varchar(300)" json:"photo_url,omitempty"`
	IsDeleted bool      `gorm:"type:boolean;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Guardians []ChildGuardian `gorm:"foreignKey:ChildID" json:"guardians,omitempty"`
}

// ChildGuardian связка ребенок-опекун, единственный источник владения.
type ChildGuardian struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ChildID  uint   `gorm:"not null;uniqueIndex:idx_child_guardian" json:"child_id"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_child_guardian" json:"user_id"`
	Relation string `gorm:"type:varchar(50)" json:"relation"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
