package models

import (
	"time"

	"gorm.io/gorm"
)

// ErrorCategory groups journal entries by the failing subsystem
type ErrorCategory string

const (
	CategorySignal  ErrorCategory = "signal"  // process, window, audio or idle lookup
	CategoryConfig  ErrorCategory = "config"  // G-Helper config missing, unreadable, malformed or unwritable
	CategoryRestart ErrorCategory = "restart" // enumeration or relaunch of G-Helper
	CategoryTick    ErrorCategory = "tick"    // anything else escaping an iteration
)

type ErrorLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Category  ErrorCategory  `gorm:"not null;index" json:"category"`
	ErrorMsg  string         `gorm:"not null" json:"error_msg"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type CategorySummary struct {
	Category   ErrorCategory `json:"category"`
	EventCount int           `json:"event_count"`
	LastSeen   time.Time     `json:"last_seen"`
	Percentage float64       `json:"percentage,omitempty"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type ErrorReport struct {
	Period      ReportPeriod      `json:"period"`
	Categories  []CategorySummary `json:"categories"`
	Recent      []*ErrorLog       `json:"recent"`
	TotalErrors int               `json:"total_errors"`
	GeneratedAt time.Time         `json:"generated_at"`
}
