package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username         string     `json:"username" gorm:"uniqueIndex"`
	Email            string     `json:"email" gorm:"uniqueIndex"`
	PasswordHash     string     `json:"-"`
	Key              *string    `json:"key" gorm:"uniqueIndex"`
	KeyExpiry        *time.Time `json:"key_expiry"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	LastIP           *string    `json:"last_ip"`
	LastKeyIssueDate *time.Time `json:"last_key_issue_date"`
}
