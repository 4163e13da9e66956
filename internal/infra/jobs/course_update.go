package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"coursehub/database"
	"coursehub/internal/domain/catalog"
	"coursehub/internal/infra/mail"

	"gorm.io/gorm"
)

// sendMail is swappable in tests.
var sendMail = mail.Send

// NotifyCourseUpdated runs the debounced notification trigger after a
// successful course or lesson update. The timestamp check-and-set happens
// before the enqueue to narrow the duplicate window; it is deliberately
// not transactional, a duplicate mail inside the window is tolerable.
func NotifyCourseUpdated(db *gorm.DB, course *catalog.Course, now time.Time) error {
	if !catalog.NotificationDue(course.LastUpdate, now) {
		return nil
	}

	if err := db.Model(&catalog.Course{}).
		Where("id = ?", course.ID).
		Update("last_update", now).Error; err != nil {
		return err
	}
	course.LastUpdate = &now

	return Enqueue(context.Background(), TypeCourseUpdate, map[string]interface{}{
		"course_id": course.ID,
	})
}

// HandleCourseUpdate fans a course change out to its subscribers. The
// course may have been deleted since the enqueue; that is a no-op. Mail
// failures are swallowed at this boundary.
func HandleCourseUpdate(ctx context.Context, job Job) error {
	courseID, ok := job.Payload["course_id"].(float64)
	if !ok {
		return fmt.Errorf("course_update job %s: missing course_id", job.ID)
	}

	var course catalog.Course
	if err := database.DB.WithContext(ctx).First(&course, uint(courseID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	var subs []catalog.Subscription
	if err := database.DB.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", course.ID).
		Find(&subs).Error; err != nil {
		return err
	}

	recipients := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.User.Email != "" {
			recipients = append(recipients, sub.User.Email)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Course updated: %s", course.Name)
	body := fmt.Sprintf("The materials of the course %q have been updated.", course.Name)
	if err := sendMail(recipients, subject, body); err != nil {
		log.Printf("[Jobs] course %d: notification mail failed: %v", course.ID, err)
	}
	return nil
}
