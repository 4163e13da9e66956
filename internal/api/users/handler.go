package users

import (
	"net/http"

	"coursehub/database"
	"coursehub/internal/domain/payments"
	"coursehub/internal/domain/users"
	stripeinfra "coursehub/internal/infra/stripe"

	"github.com/gin-gonic/gin"
)

// paymentView wraps a payment with the normalized gateway status for
// display; the raw payment_status stays untouched in the row.
type paymentView struct {
	payments.Payment
	Status string `json:"status"`
}

// GET /me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Preload("Roles").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var history []payments.Payment
	if err := database.DB.
		Preload("PaidCourse").
		Preload("PaidLesson").
		Where("user_id = ?", user.ID).
		Order("payment_date DESC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	views := make([]paymentView, 0, len(history))
	for _, p := range history {
		views = append(views, paymentView{
			Payment: p,
			Status:  stripeinfra.NormalizePaymentStatus(p.PaymentStatus),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"payments": views,
	})
}

// GET /verify?token=...
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.
		Where("token = ? AND type = ?", token, users.TokenTypeVerifyEmail).
		First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}
