package database

import (
	"time"

	"github.com/actionsum/auraswitch/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for the error journal
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	if errorLog.Timestamp.IsZero() {
		errorLog.Timestamp = time.Now()
	}
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Record journals err under category. A nil err is ignored.
func (r *Repository) Record(category models.ErrorCategory, err error) error {
	if err == nil {
		return nil
	}
	return r.CreateErrorLog(&models.ErrorLog{
		Timestamp: time.Now(),
		Category:  category,
		ErrorMsg:  err.Error(),
	})
}

// GetErrorsSince retrieves error logs since a given time, newest first
func (r *Repository) GetErrorsSince(since time.Time) ([]*models.ErrorLog, error) {
	var logs []*models.ErrorLog
	result := r.db.Where("timestamp >= ?", since).Order("timestamp DESC").Find(&logs)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query error logs")
	}
	return logs, nil
}

// GetCategorySummarySince returns per-category counts since a given time
func (r *Repository) GetCategorySummarySince(since time.Time) ([]models.CategorySummary, error) {
	var rows []struct {
		Category   models.ErrorCategory
		EventCount int
		LastSeen   string
	}

	result := r.db.Model(&models.ErrorLog{}).
		Select("category, COUNT(*) as event_count, MAX(timestamp) as last_seen").
		Where("timestamp >= ?", since).
		Group("category").
		Order("event_count DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query category summary")
	}

	summaries := make([]models.CategorySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, models.CategorySummary{
			Category:   row.Category,
			EventCount: row.EventCount,
			LastSeen:   parseSQLiteTime(row.LastSeen),
		})
	}
	return summaries, nil
}

// GetLatest retrieves the most recent error log, or nil if the journal is empty
func (r *Repository) GetLatest() (*models.ErrorLog, error) {
	var errorLog models.ErrorLog
	result := r.db.Order("timestamp DESC").First(&errorLog)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest error log")
	}
	return &errorLog, nil
}

// DeleteOld deletes error logs older than a specified date (soft delete)
func (r *Repository) DeleteOld(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.ErrorLog{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old error logs")
	}
	return result.RowsAffected, nil
}

// Clear removes all error logs from the database
func (r *Repository) Clear() error {
	result := r.db.Exec("DELETE FROM error_logs")
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear error logs")
	}
	return nil
}

// MAX() loses the column type, so sqlite hands back text
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

func parseSQLiteTime(s string) time.Time {
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
