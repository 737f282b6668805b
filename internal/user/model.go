package user

import (
	"time"
)

// User is a stored credential record. UserID is the unique login name and
// Email is derived from it at registration; neither changes afterwards.
type User struct {
	UserID       string    `json:"userId" bson:"userId"`
	PasswordHash string    `json:"-" bson:"password"`
	Email        string    `json:"email" bson:"email"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// userRecord is the GORM row for a User.
type userRecord struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       string    `gorm:"column:user_id;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);index;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userRecord) TableName() string {
	return "users"
}

func (r *userRecord) toUser() *User {
	return &User{
		UserID:       r.UserID,
		PasswordHash: r.PasswordHash,
		Email:        r.Email,
		CreatedAt:    r.CreatedAt,
	}
}

func fromUser(u *User) *userRecord {
	return &userRecord{
		UserID:       u.UserID,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
	}
}
