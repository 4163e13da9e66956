package courses

import (
	"coursehub/internal/domain/access"
	"coursehub/internal/domain/catalog"

	"gorm.io/gorm"
)

// courseQuery is the strict collection: moderators see every course,
// everyone else only their own.
func courseQuery(db *gorm.DB, pr access.Principal) *gorm.DB {
	return db.Model(&catalog.Course{}).Scopes(access.OwnedScope(pr))
}

// subscribedCourseIDs returns which of the given courses the user is
// subscribed to, for the is_subscribed response field.
func subscribedCourseIDs(db *gorm.DB, userID uint, courseIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(courseIDs))
	if len(courseIDs) == 0 {
		return out, nil
	}

	var subs []catalog.Subscription
	if err := db.Where("user_id = ? AND course_id IN ?", userID, courseIDs).Find(&subs).Error; err != nil {
		return nil, err
	}
	for _, s := range subs {
		out[s.CourseID] = true
	}
	return out, nil
}
