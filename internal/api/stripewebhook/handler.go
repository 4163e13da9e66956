package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"coursehub/config"
	"coursehub/database"
	"coursehub/internal/domain/payments"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// StripeWebhook keeps local payment status in sync without the client
// polling check-status: checkout.session.completed overwrites the stored
// payment_status for the matching session.
func StripeWebhook(c *gin.Context) {
	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Println("Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := updatePaymentStatus(session.ID, string(session.PaymentStatus)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
}

// Last-write-wins, and a session we never issued is acknowledged rather
// than retried forever by Stripe.
func updatePaymentStatus(sessionID, status string) error {
	res := database.DB.Model(&payments.Payment{}).
		Where("stripe_session_id = ?", sessionID).
		Update("payment_status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment for session %s: %w", sessionID, res.Error)
	}
	return nil
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
