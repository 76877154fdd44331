package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

const stripeAPIBase = "https://api.stripe.com/v1"

type stripeSessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CheckoutSession is the subset of the gateway response the caller needs.
type CheckoutSession struct {
	ID  string
	URL string
}

// CreateCheckoutSession opens a hosted card checkout for one course and
// returns the redirect URL. Metadata is round-tripped back to us on the
// completion webhook, so the purchase id rides along there.
func CreateCheckoutSession(productName string, amount float64, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error) {
	cfg := config.AppConfig
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe is not configured")
	}

	// Stripe takes the amount in the currency's smallest unit.
	unitAmount := strconv.FormatInt(int64(amount*100), 10)

	form := map[string]string{
		"mode":        "payment",
		"success_url": successURL,
		"cancel_url":  cancelURL,
	}
	form["line_items[0][price_data][currency]"] = cfg.Currency
	form["line_items[0][price_data][product_data][name]"] = productName
	form["line_items[0][price_data][unit_amount]"] = unitAmount
	form["line_items[0][quantity]"] = "1"
	for key, value := range metadata {
		form[fmt.Sprintf("metadata[%s]", key)] = value
	}

	var result stripeSessionResponse
	resp, err := resty.New().
		SetTimeout(30 * time.Second).
		R().
		SetBasicAuth(cfg.StripeSecretKey, "").
		SetFormData(form).
		Post(stripeAPIBase + "/checkout/sessions")
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("unexpected gateway response: %v", err)
	}
	if resp.IsError() || result.URL == "" {
		if result.Error.Message != "" {
			return nil, fmt.Errorf("checkout session failed: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("checkout session failed with status %d", resp.StatusCode())
	}

	return &CheckoutSession{ID: result.ID, URL: result.URL}, nil
}
