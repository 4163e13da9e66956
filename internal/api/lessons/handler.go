package lessons

import (
	"net/http"
	"time"

	"coursehub/database"
	"coursehub/internal/domain/access"
	"coursehub/internal/domain/catalog"
	"coursehub/internal/domain/users"
	"coursehub/internal/infra/jobs"

	"github.com/gin-gonic/gin"
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

// GET /lessons
//
// The public listing is read-permissive: every authenticated principal
// may browse all lessons. Mutation still requires ownership.
func ListLessons(c *gin.Context) {
	if _, ok := principal(c); !ok {
		return
	}

	var list []catalog.Lesson
	if err := database.DB.Order("id ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lessons"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /my/lessons
//
// The strict owner listing: moderators see everything, everyone else
// only their own rows.
func ListMyLessons(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var list []catalog.Lesson
	if err := database.DB.Model(&catalog.Lesson{}).
		Scopes(access.OwnedScope(pr)).
		Order("id ASC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lessons"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /lessons
func CreateLesson(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	if access.OwnerOnly.Decide(pr, access.ActionCreate, nil) != access.Allow {
		c.JSON(http.StatusForbidden, gin.H{"error": "Moderators cannot create lessons"})
		return
	}

	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := catalog.ValidateVideoURL(req.VideoURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course catalog.Course
	if err := database.DB.First(&course, req.CourseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	owner := pr.ID
	lesson := catalog.Lesson{
		Name:        req.Name,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		VideoURL:    req.VideoURL,
		CourseID:    course.ID,
		Price:       req.Price,
		OwnerID:     &owner,
	}
	if err := database.DB.Create(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// GET /lessons/:id
func GetLesson(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var lesson catalog.Lesson
	if err := database.DB.First(&lesson, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	switch access.OwnerOrReadOnly.Decide(pr, access.ActionRetrieve, lesson) {
	case access.Allow:
	case access.DenyVisible:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// PUT /lessons/:id
func UpdateLesson(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var req UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VideoURL != nil {
		if err := catalog.ValidateVideoURL(*req.VideoURL); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var lesson catalog.Lesson
	if err := database.DB.Model(&catalog.Lesson{}).
		Scopes(access.OwnedScope(pr)).
		First(&lesson, "lessons.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	switch access.OwnerOnly.Decide(pr, access.ActionUpdate, lesson) {
	case access.Allow:
	case access.DenyVisible:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
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
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&catalog.Lesson{}).
			Where("id = ?", lesson.ID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
			return
		}
	}

	// A lesson update counts as an update of its parent course for the
	// subscriber notification clock.
	var course catalog.Course
	if err := database.DB.First(&course, lesson.CourseID).Error; err == nil {
		if err := jobs.NotifyCourseUpdated(database.DB, &course, time.Now()); err != nil {
			// Notification is a side effect; the update itself succeeded.
			c.JSON(http.StatusOK, gin.H{"status": "ok", "notification": "enqueue failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /lessons/:id
func DeleteLesson(c *gin.Context) {
	pr, ok := principal(c)
	if !ok {
		return
	}

	var lesson catalog.Lesson
	if err := database.DB.Model(&catalog.Lesson{}).
		Scopes(access.OwnedScope(pr)).
		First(&lesson, "lessons.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	switch access.OwnerOnly.Decide(pr, access.ActionDestroy, lesson) {
	case access.Allow:
	case access.DenyVisible:
		c.JSON(http.StatusForbidden, gin.H{"error": "Moderators cannot delete lessons"})
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if err := database.DB.Delete(&catalog.Lesson{}, lesson.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
