// internal/models/user.go
package models

import (
	"time"
)

type User struct {
	BaseModel
	GoogleID    string     `json:"-" gorm:"uniqueIndex;size:64"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	Email       string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Avatar      string     `json:"avatar" gorm:"size:500"`
	Phone       string     `json:"phone" gorm:"size:20"`
	Role        UserRole   `json:"role" gorm:"type:varchar(10);default:'user'"`
	LastLoginAt *time.Time `json:"lastLoginAt"`

	// Relationships
	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:OwnerID"`
	Favorites  []Favorite `json:"favorites,omitempty" gorm:"foreignKey:UserID"`
	Bookings   []Booking  `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
