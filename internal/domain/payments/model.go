package payments

import (
	"fmt"
	"time"

	"coursehub/internal/domain/apperr"
	"coursehub/internal/domain/catalog"
	"coursehub/internal/domain/users"
)

const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodStripe   = "stripe"
)

type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        users.User `json:"-"`
	PaymentDate time.Time  `gorm:"index" json:"payment_date"`

	PaidCourseID *uint           `json:"paid_course_id"`
	PaidCourse   *catalog.Course `json:"paid_course,omitempty"`
	PaidLessonID *uint           `json:"paid_lesson_id"`
	PaidLesson   *catalog.Lesson `json:"paid_lesson,omitempty"`

	Amount float64 `gorm:"not null" json:"amount"`
	Method string  `gorm:"type:varchar(10);not null" json:"method"`

	// Gateway correlation; set only when Method is stripe.
	StripeProductID *string `json:"stripe_product_id,omitempty"`
	StripePriceID   *string `json:"stripe_price_id,omitempty"`
	StripeSessionID *string `gorm:"uniqueIndex:idx_payments_stripe_session_id" json:"stripe_session_id,omitempty"`
	PaymentURL      *string `json:"payment_url,omitempty"`
	PaymentStatus   *string `json:"payment_status,omitempty"`
}

// Validate enforces the hard invariant: a payment targets exactly one of
// course or lesson.
func (p Payment) Validate() error {
	if p.PaidCourseID == nil && p.PaidLessonID == nil {
		return fmt.Errorf("%w: either a course or a lesson must be specified", apperr.ErrValidation)
	}
	if p.PaidCourseID != nil && p.PaidLessonID != nil {
		return fmt.Errorf("%w: a course and a lesson cannot both be specified", apperr.ErrValidation)
	}
	return nil
}

func (p Payment) IsGateway() bool {
	return p.StripeSessionID != nil && *p.StripeSessionID != ""
}
