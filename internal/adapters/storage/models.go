package storage

import "time"

// AttemptModel is the GORM model for the login_attempts table
type AttemptModel struct {
	ClosedAt    *time.Time `gorm:"default:null"`
	ConnectedAt *time.Time `gorm:"default:null"`
	CreatedAt   time.Time
	Error       string     `gorm:"default:''"`
	ID          string     `gorm:"primaryKey"`
	Outcome     string     `gorm:"not null;default:'pending';check:outcome IN ('pending','connected','failed','closed');index:idx_outcome"`
	StartedAt   time.Time  `gorm:"not null;index:idx_started_at"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (AttemptModel) TableName() string { return "login_attempts" }
