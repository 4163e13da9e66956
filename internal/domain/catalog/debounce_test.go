package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationDue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, NotificationDue(nil, now), "never-notified course is always due")

	recent := now.Add(-time.Hour)
	assert.False(t, NotificationDue(&recent, now))

	boundary := now.Add(-NotifyWindow)
	assert.True(t, NotificationDue(&boundary, now), "exactly the window apart counts as due")

	stale := now.Add(-NotifyWindow - time.Minute)
	assert.True(t, NotificationDue(&stale, now))
}
