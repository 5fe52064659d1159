package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nekokin/models"
	"nekokin/services/booking"
)

// defaultVNDToUSD is used when no exchange rate is configured.
const defaultVNDToUSD = 0.00004

// PayPalGateway talks to the PayPal Orders v2 API. Unlike the Vietnamese
// gateways the buyer approves the order in-page, so the client drives a
// create-order/capture-order pair instead of a redirect round trip.
type PayPalGateway struct {
	ClientID string
	Secret   string
	Endpoint string
	Rate     float64

	client *http.Client
}

func NewPayPalGateway(clientID, secret, endpoint string, rate float64) *PayPalGateway {
	return &PayPalGateway{
		ClientID: clientID,
		Secret:   secret,
		Endpoint: strings.TrimRight(endpoint, "/"),
		Rate:     rate,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *PayPalGateway) Name() models.PaymentMethod { return models.MethodPayPal }

// USDAmount converts a VND total to the dollar string PayPal expects,
// clamped to its one-cent minimum.
func (g *PayPalGateway) USDAmount(vnd int64) string {
	rate := g.Rate
	if rate <= 0 {
		rate = defaultVNDToUSD
	}
	usd := float64(vnd) * rate
	if usd < 0.01 {
		usd = 0.01
	}
	return fmt.Sprintf("%.2f", usd)
}

func (g *PayPalGateway) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.Endpoint+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.ClientID, g.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", booking.NewExternalError("paypal token request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", booking.NewExternalError("paypal token request returned %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", booking.NewExternalError("paypal token response unreadable: %v", err)
	}
	return out.AccessToken, nil
}

type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
	PurchaseUnits []struct {
		ReferenceID string `json:"reference_id"`
		Payments    struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// CreateOrder opens a CAPTURE-intent order carrying the booking id as its
// reference, and returns the order id for the client to approve.
func (g *PayPalGateway) CreateOrder(ctx context.Context, b *models.Booking) (*PayPalOrder, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{{
			"reference_id": b.ID,
			"amount": map[string]string{
				"currency_code": "USD",
				"value":         g.USDAmount(b.TotalAmount),
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.Endpoint+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, booking.NewExternalError("paypal create order failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, booking.NewExternalError("paypal create order returned %d", resp.StatusCode)
	}

	var order PayPalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, booking.NewExternalError("paypal order response unreadable: %v", err)
	}
	return &order, nil
}

// CaptureOrder settles an approved order and reports whether the capture
// completed. The booking id comes back as the purchase unit reference.
func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID string) (*models.GatewayCallback, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.Endpoint+"/v2/checkout/orders/"+orderID+"/capture", bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, booking.NewExternalError("paypal capture failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, booking.NewExternalError("paypal capture returned %d", resp.StatusCode)
	}

	var order PayPalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, booking.NewExternalError("paypal capture response unreadable: %v", err)
	}
	if len(order.PurchaseUnits) == 0 || order.PurchaseUnits[0].ReferenceID == "" {
		return nil, booking.NewExternalError("paypal capture carried no booking reference")
	}

	details := map[string]interface{}{
		"orderID": order.ID,
		"status":  order.Status,
	}
	if caps := order.PurchaseUnits[0].Payments.Captures; len(caps) > 0 {
		details["captureID"] = caps[0].ID
	}
	cb := &models.GatewayCallback{
		BookingID: order.PurchaseUnits[0].ReferenceID,
		Success:   order.Status == "COMPLETED",
		Message:   "paypal capture status " + order.Status,
		Details:   details,
	}
	if cb.Success {
		cb.Message = "payment completed"
	}
	return cb, nil
}

// CreateRedirect opens an order and hands back PayPal's approval link so the
// unified booking flow can treat PayPal like the redirect gateways.
func (g *PayPalGateway) CreateRedirect(ctx context.Context, b *models.Booking, _ string) (string, error) {
	order, err := g.CreateOrder(ctx, b)
	if err != nil {
		return "", err
	}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href, nil
		}
	}
	return "", booking.NewExternalError("paypal order %s carried no approval link", order.ID)
}

// VerifyCallback is unused for PayPal; outcomes arrive through CaptureOrder.
func (g *PayPalGateway) VerifyCallback(map[string]string) (*models.GatewayCallback, error) {
	return nil, booking.NewValidationError("paypal outcomes are settled by capturing the order")
}

// ApplyCapture records a capture outcome through the shared payment service
// path so PayPal writes stay idempotent like the IPN gateways.
func (s *Service) ApplyCapture(cb *models.GatewayCallback) (bool, error) {
	b, err := s.Bookings.GetByID(cb.BookingID)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, booking.NewNotFoundError("booking %s does not exist", cb.BookingID)
	}
	if b.PaymentStatus != models.PaymentPending {
		return false, nil
	}
	if err := s.apply(cb, models.MethodPayPal); err != nil {
		return false, err
	}
	return true, nil
}
