package payments

type PaymentIntentRequest struct {
	CourseID *uint `json:"course_id"`
	LessonID *uint `json:"lesson_id"`
}

type CreatePaymentRequest struct {
	CourseID *uint   `json:"course_id"`
	LessonID *uint   `json:"lesson_id"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Method   string  `json:"method" binding:"required,oneof=cash transfer"`
}
