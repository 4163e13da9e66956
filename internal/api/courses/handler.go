package courses

import (
	"net/http"
	"time"

	"coursehub/database"
	"coursehub/internal/domain/access"
	"coursehub/internal/domain/catalog"
	"coursehub/internal/domain/users"
	"coursehub/internal/infra/jobs"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

func principal(c *gin.Context) (access.Principal, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return access.Principal{}, false
	}
	pr := access.Principal{ID: userID}
	for _, role := range c.GetStringSlice("roles") {
		if role == users.RoleModerator {
			pr.Moderator = true
		}
	}
	return pr, true
}

// GET /courses
func ListCourses(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var list []catalog.Course
	if err := courseQuery(database.DB, pr).
		Preload("Lessons").
		Order("id ASC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courses"})
		return
	}

	ids := make([]uint, 0, len(list))
	for _, course := range list {
		ids = append(ids, course.ID)
	}
	subscribed, err := subscribedCourseIDs(database.DB, pr.ID, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	out := make([]CourseResponse, 0, len(list))
	for _, course := range list {
		out = append(out, toCourseResponse(course, subscribed[course.ID]))
	}
	c.JSON(http.StatusOK, out)
}

// POST /courses
func CreateCourse(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	if access.OwnerOnly.Decide(pr, access.ActionCreate, nil) != access.Allow {
		c.JSON(http.StatusForbidden, gin.H{"error": "Moderators cannot create courses"})
		return
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := pr.ID
	course := catalog.Course{
		Name:        req.Name,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		Price:       req.Price,
		OwnerID:     &owner,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, toCourseResponse(course, false))
}

// GET /courses/:id
func GetCourse(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var course catalog.Course
	if err := courseQuery(database.DB, pr).
		Preload("Lessons").
		First(&course, "courses.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	subscribed, err := subscribedCourseIDs(database.DB, pr.ID, []uint{course.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, toCourseResponse(course, subscribed[course.ID]))
}

// PUT /courses/:id
func UpdateCourse(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course catalog.Course
	if err := courseQuery(database.DB, pr).First(&course, "courses.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	switch access.OwnerOnly.Decide(pr, access.ActionUpdate, course) {
	case access.Allow:
	case access.DenyVisible:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PreviewURL != nil {
		updates["preview_url"] = *req.PreviewURL
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&catalog.Course{}).
			Where("id = ?", course.ID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
			return
		}
	}

	if err := jobs.NotifyCourseUpdated(database.DB, &course, time.Now()); err != nil {
		// Notification is a side effect; the update itself succeeded.
		c.JSON(http.StatusOK, gin.H{"status": "ok", "notification": "enqueue failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /courses/:id
func DeleteCourse(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var course catalog.Course
	if err := courseQuery(database.DB, pr).First(&course, "courses.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	switch access.OwnerOnly.Decide(pr, access.ActionDestroy, course) {
	case access.Allow:
	case access.DenyVisible:
		c.JSON(http.StatusForbidden, gin.H{"error": "Moderators cannot delete courses"})
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if err := database.DB.Delete(&catalog.Course{}, course.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// POST /courses/:id/subscribe
func Subscribe(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var course catalog.Course
	if err := courseQuery(database.DB, pr).First(&course, "courses.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	sub := catalog.Subscription{UserID: pr.ID, CourseID: course.ID}
	res := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&sub)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	if res.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Already subscribed to this course"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
}

// DELETE /courses/:id/unsubscribe
func Unsubscribe(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var course catalog.Course
	if err := courseQuery(database.DB, pr).First(&course, "courses.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	res := database.DB.
		Where("user_id = ? AND course_id = ?", pr.ID, course.ID).
		Delete(&catalog.Subscription{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe"})
		return
	}
	if res.RowsAffected == 0 {
		// Unsubscribing from nothing is a caller mistake, not a no-op.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not subscribed to this course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}
