package utils

import (
	"coursedesk/config"
	"coursedesk/database"
	courseModels "coursedesk/models/course"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logPurge logs purge scheduler events
func logPurge(format string, args ...interface{}) {
	log.Printf("[PURGE-SCHEDULER] "+format, args...)
}

// PurgeCutoff returns the start of the day retentionDays before t
func PurgeCutoff(t time.Time, retentionDays int) time.Time {
	return now.With(t).BeginningOfDay().AddDate(0, 0, -retentionDays)
}

// PurgeDeletedContent hard-deletes soft-deleted lessons and modules last touched before cutoff.
// Lessons go first so a purged module never leaves rows pointing at it.
func PurgeDeletedContent(db *gorm.DB, cutoff time.Time) (lessons int64, modules int64, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("is_deleted = ? AND updated_at < ?", true, cutoff).Delete(&courseModels.Lesson{})
		if res.Error != nil {
			return res.Error
		}
		lessons = res.RowsAffected

		res = tx.Where("is_deleted = ? AND updated_at < ?", true, cutoff).Delete(&courseModels.Module{})
		if res.Error != nil {
			return res.Error
		}
		modules = res.RowsAffected
		return nil
	})
	return lessons, modules, err
}

// InitializePurgeScheduler starts the cron job that clears out soft-deleted course content
func InitializePurgeScheduler() *cron.Cron {
	schedule := config.AppConfig.PurgeSchedule
	retention := config.AppConfig.PurgeRetentionDays
	logPurge("Initializing purge scheduler (%s, retention %d days)...", schedule, retention)

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		cutoff := PurgeCutoff(time.Now(), retention)
		lessons, modules, err := PurgeDeletedContent(database.Database.Db, cutoff)
		if err != nil {
			logPurge("Error purging deleted content: %v", err)
			return
		}
		logPurge("Purged %d lessons and %d modules deleted before %s", lessons, modules, cutoff.Format(time.RFC3339))
	})
	if err != nil {
		logPurge("Invalid PURGE_SCHEDULE %q, purge disabled: %v", schedule, err)
		return c
	}

	c.Start()
	logPurge("Purge scheduler started")
	return c
}
