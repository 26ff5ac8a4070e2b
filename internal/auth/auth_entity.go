package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonnelID *uuid.UUID `gorm:"type:uuid;index"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex:uq_user_email;not null"`
	Password    string     `gorm:"type:varchar(255);not null"`
	Name        string     `gorm:"type:varchar(120);not null"`
	Role        string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (User) TableName() string {
	return "users"
}
