package stripewebhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coursehub/config"
	"coursehub/database"
	"coursehub/internal/domain/catalog"
	"coursehub/internal/domain/payments"
	"coursehub/internal/domain/users"
)

const testSecret = "whsec_test_secret"

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.STRIPE_WEBHOOK_SECRET = testSecret
	t.Cleanup(func() { config.STRIPE_WEBHOOK_SECRET = "" })

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&catalog.Course{}, &catalog.Lesson{},
		&payments.Payment{},
	))

	database.DB = db
	return db
}

// signPayload builds a Stripe-Signature header the way Stripe signs
// webhook deliveries: HMAC-SHA256 over "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.", ts.Unix())))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(payload []byte, signature string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/webhook", StripeWebhook)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedStripePayment(t *testing.T, db *gorm.DB, sessionID, status string) payments.Payment {
	t.Helper()
	course := catalog.Course{Name: "Go from scratch", Price: 19.99}
	require.NoError(t, db.Create(&course).Error)
	payment := payments.Payment{
		UserID:          1,
		Amount:          19.99,
		Method:          payments.MethodStripe,
		PaidCourseID:    &course.ID,
		StripeSessionID: &sessionID,
		PaymentStatus:   &status,
	}
	require.NoError(t, db.Create(&payment).Error)
	return payment
}

func TestStripeWebhookCompletedUpdatesStatus(t *testing.T) {
	db := setupDB(t)
	payment := seedStripePayment(t, db, "cs_test_123", "unpaid")

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "payment_status": "paid"}}
	}`)

	w := postWebhook(payload, signPayload(payload, testSecret, time.Now()))
	assert.Equal(t, http.StatusOK, w.Code)

	var stored payments.Payment
	require.NoError(t, db.First(&stored, payment.ID).Error)
	assert.Equal(t, "paid", *stored.PaymentStatus)
}

func TestStripeWebhookBadSignature(t *testing.T) {
	db := setupDB(t)
	payment := seedStripePayment(t, db, "cs_test_123", "unpaid")

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "payment_status": "paid"}}
	}`)

	w := postWebhook(payload, signPayload(payload, "whsec_wrong", time.Now()))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored payments.Payment
	require.NoError(t, db.First(&stored, payment.ID).Error)
	assert.Equal(t, "unpaid", *stored.PaymentStatus)
}

func TestStripeWebhookUnknownEventAcked(t *testing.T) {
	setupDB(t)

	payload := []byte(`{"id": "evt_1", "type": "invoice.created", "data": {"object": {}}}`)
	w := postWebhook(payload, signPayload(payload, testSecret, time.Now()))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestStripeWebhookRequiresSecret(t *testing.T) {
	setupDB(t)
	config.STRIPE_WEBHOOK_SECRET = ""

	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {}}}`)
	w := postWebhook(payload, signPayload(payload, testSecret, time.Now()))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdatePaymentStatusUnknownSession(t *testing.T) {
	setupDB(t)
	// A session this app never issued must not error; Stripe would
	// otherwise retry the delivery forever.
	assert.NoError(t, updatePaymentStatus("cs_unknown", "paid"))
}
