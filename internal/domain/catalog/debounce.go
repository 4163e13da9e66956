package catalog

import "time"

// NotifyWindow is the minimum interval between consecutive update
// notifications for the same course.
const NotifyWindow = 4 * time.Hour

// NotificationDue reports whether a course mutation should fan out to
// subscribers. A nil lastUpdate means the course has never notified.
func NotificationDue(lastUpdate *time.Time, now time.Time) bool {
	if lastUpdate == nil {
		return true
	}
	return now.Sub(*lastUpdate) >= NotifyWindow
}
