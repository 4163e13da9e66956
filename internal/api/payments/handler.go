package payments

import (
	"fmt"
	"net/http"
	"time"

	"coursehub/config"
	"coursehub/database"
	"coursehub/internal/domain/catalog"
	"coursehub/internal/domain/payments"
	stripeinfra "coursehub/internal/infra/stripe"

	"github.com/gin-gonic/gin"
)

// Gateway is swappable in tests; production uses the Stripe client.
var Gateway stripeinfra.Gateway = stripeinfra.Client{}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// GET /payments
func ListPayments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	q := database.DB.
		Preload("PaidCourse").
		Preload("PaidLesson").
		Where("user_id = ?", userID)

	if method := c.Query("method"); method != "" {
		q = q.Where("method = ?", method)
	}
	if courseID := c.Query("course_id"); courseID != "" {
		q = q.Where("paid_course_id = ?", courseID)
	}
	if lessonID := c.Query("lesson_id"); lessonID != "" {
		q = q.Where("paid_lesson_id = ?", lessonID)
	}

	var list []payments.Payment
	if err := q.Order("payment_date DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /payments
//
// Records a local cash/transfer payment. These are created complete;
// only gateway payments carry a status lifecycle.
func CreatePayment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := payments.Payment{
		UserID:       userID,
		PaymentDate:  time.Now(),
		PaidCourseID: req.CourseID,
		PaidLessonID: req.LessonID,
		Amount:       req.Amount,
		Method:       req.Method,
	}
	if err := payment.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, _, _, err := resolveTarget(req.CourseID, req.LessonID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// POST /payments/create-payment-intent
//
// Creates a Stripe product, price and checkout session for exactly one of
// course/lesson, then persists the payment with the session correlation.
// Any gateway failure aborts before anything is persisted: the local
// commit is the atomicity boundary.
func CreatePaymentIntent(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	probe := payments.Payment{PaidCourseID: req.CourseID, PaidLessonID: req.LessonID}
	if err := probe.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name, description, amount, err := resolveTarget(req.CourseID, req.LessonID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}

	productID, err := Gateway.CreateProduct(name, description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priceID, err := Gateway.CreatePrice(productID, stripeinfra.MinorUnits(amount), "usd")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	successURL := fmt.Sprintf("%s/payment/success?session_id={CHECKOUT_SESSION_ID}", config.FRONTEND_URL)
	cancelURL := fmt.Sprintf("%s/payment/cancel", config.FRONTEND_URL)

	session, err := Gateway.CreateSession(priceID, successURL, cancelURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := payments.Payment{
		UserID:          userID,
		PaymentDate:     time.Now(),
		PaidCourseID:    req.CourseID,
		PaidLessonID:    req.LessonID,
		Amount:          amount,
		Method:          payments.MethodStripe,
		StripeProductID: &productID,
		StripePriceID:   &priceID,
		StripeSessionID: &session.ID,
		PaymentURL:      &session.URL,
		PaymentStatus:   &session.Status,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment, "payment_url": session.URL})
}

// GET /payments/:id/check-status
//
// Re-reads the gateway session status and overwrites the stored one.
// Last-write-wins; no status history is kept.
func CheckStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var payment payments.Payment
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	if !payment.IsGateway() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment is not linked to Stripe"})
		return
	}

	session, err := Gateway.GetSession(*payment.StripeSessionID)
	if err != nil {
		// Stored status stays untouched on gateway failure.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment.PaymentStatus = &session.Status
	if err := database.DB.Model(&payments.Payment{}).
		Where("id = ?", payment.ID).
		Update("payment_status", session.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment":       payment,
		"stripe_status": stripeinfra.NormalizePaymentStatus(&session.Status),
	})
}

// resolveTarget maps the XOR target onto its priced resource.
func resolveTarget(courseID, lessonID *uint) (name, description string, amount float64, err error) {
	if courseID != nil {
		var course catalog.Course
		if dbErr := database.DB.First(&course, *courseID).Error; dbErr != nil {
			return "", "", 0, fmt.Errorf("Course not found")
		}
		return course.Name, course.Description, course.Price, nil
	}

	var lesson catalog.Lesson
	if dbErr := database.DB.First(&lesson, *lessonID).Error; dbErr != nil {
		return "", "", 0, fmt.Errorf("Lesson not found")
	}
	return lesson.Name, lesson.Description, lesson.Price, nil
}
