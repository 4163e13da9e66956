package courses

import (
	"time"

	"coursehub/internal/domain/catalog"
)

type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	PreviewURL  string  `json:"preview_url"`
	Price       float64 `json:"price" binding:"omitempty,gte=0"`
}

type UpdateCourseRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	PreviewURL  *string  `json:"preview_url"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

type CourseResponse struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	PreviewURL   string           `json:"preview_url"`
	OwnerID      *uint            `json:"owner_id"`
	Price        float64          `json:"price"`
	LastUpdate   *time.Time       `json:"last_update"`
	LessonsCount int              `json:"lessons_count"`
	Lessons      []catalog.Lesson `json:"lessons"`
	IsSubscribed bool             `json:"is_subscribed"`
}

func toCourseResponse(course catalog.Course, subscribed bool) CourseResponse {
	lessons := course.Lessons
	if lessons == nil {
		lessons = []catalog.Lesson{}
	}
	return CourseResponse{
		ID:           course.ID,
		Name:         course.Name,
		Description:  course.Description,
		PreviewURL:   course.PreviewURL,
		OwnerID:      course.OwnerID,
		Price:        course.Price,
		LastUpdate:   course.LastUpdate,
		LessonsCount: len(lessons),
		Lessons:      lessons,
		IsSubscribed: subscribed,
	}
}
