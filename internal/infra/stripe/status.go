package stripe

import "strings"

// Stripe-ish normalization for checkout session payment_status values.
func NormalizePaymentStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "none"
	}
	switch strings.TrimSpace(*s) {
	case "paid", "no_payment_required":
		return "paid"
	case "unpaid":
		return "unpaid"
	default:
		return strings.TrimSpace(*s)
	}
}
