package lessons

type CreateLessonRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	PreviewURL  string  `json:"preview_url"`
	VideoURL    string  `json:"video_url"`
	CourseID    uint    `json:"course_id" binding:"required"`
	Price       float64 `json:"price" binding:"omitempty,gte=0"`
}

type UpdateLessonRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	PreviewURL  *string  `json:"preview_url"`
	VideoURL    *string  `json:"video_url"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}
