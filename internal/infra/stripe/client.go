package stripe

import (
	"fmt"
	"math"

	"coursehub/config"
	"coursehub/internal/domain/apperr"

	stripego "github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/price"
	"github.com/stripe/stripe-go/v75/product"
)

// CheckoutSession is the slice of the Stripe session this app cares about.
type CheckoutSession struct {
	ID     string
	URL    string
	Status string
}

// Gateway is the payment-gateway surface used by the payments handlers.
// The default implementation talks to Stripe; tests install a fake.
type Gateway interface {
	CreateProduct(name, description string) (string, error)
	CreatePrice(productID string, minorAmount int64, currency string) (string, error)
	CreateSession(priceID, successURL, cancelURL string) (CheckoutSession, error)
	GetSession(sessionID string) (CheckoutSession, error)
}

type Client struct{}

func (Client) CreateProduct(name, description string) (string, error) {
	stripego.Key = config.STRIPE_SECRET_KEY

	p, err := product.New(&stripego.ProductParams{
		Name:        stripego.String(name),
		Description: stripego.String(description),
	})
	if err != nil {
		return "", fmt.Errorf("%w: create product: %v", apperr.ErrGateway, err)
	}
	return p.ID, nil
}

func (Client) CreatePrice(productID string, minorAmount int64, currency string) (string, error) {
	stripego.Key = config.STRIPE_SECRET_KEY

	pr, err := price.New(&stripego.PriceParams{
		Product:    stripego.String(productID),
		UnitAmount: stripego.Int64(minorAmount),
		Currency:   stripego.String(currency),
	})
	if err != nil {
		return "", fmt.Errorf("%w: create price: %v", apperr.ErrGateway, err)
	}
	return pr.ID, nil
}

func (Client) CreateSession(priceID, successURL, cancelURL string) (CheckoutSession, error) {
	stripego.Key = config.STRIPE_SECRET_KEY

	s, err := checkoutsession.New(&stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(successURL),
		CancelURL:  stripego.String(cancelURL),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{Price: stripego.String(priceID), Quantity: stripego.Int64(1)},
		},
	})
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("%w: create session: %v", apperr.ErrGateway, err)
	}
	return CheckoutSession{ID: s.ID, URL: s.URL, Status: string(s.PaymentStatus)}, nil
}

func (Client) GetSession(sessionID string) (CheckoutSession, error) {
	stripego.Key = config.STRIPE_SECRET_KEY

	s, err := checkoutsession.Get(sessionID, nil)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("%w: get session: %v", apperr.ErrGateway, err)
	}
	return CheckoutSession{ID: s.ID, URL: s.URL, Status: string(s.PaymentStatus)}, nil
}

// MinorUnits converts a 2dp decimal amount into integer minor currency
// units. Rounding, not truncation: float artifacts like 19.99*100 =
// 1998.9999... must still land on 1999.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
