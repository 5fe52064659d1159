package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nekokin/models"
	"nekokin/services/booking"

	"github.com/google/uuid"
)

// MoMoGateway drives the MoMo wallet create-payment API and verifies its
// signed return/IPN parameters.
type MoMoGateway struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	ReturnURL   string
	IPNURL      string
	Endpoint    string

	client *http.Client
}

func NewMoMoGateway(partnerCode, accessKey, secretKey, returnURL, ipnURL, endpoint string) *MoMoGateway {
	return &MoMoGateway{
		PartnerCode: partnerCode,
		AccessKey:   accessKey,
		SecretKey:   secretKey,
		ReturnURL:   returnURL,
		IPNURL:      ipnURL,
		Endpoint:    endpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *MoMoGateway) Name() models.PaymentMethod { return models.MethodMoMo }

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      string `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Signature   string `json:"signature"`
	Lang        string `json:"lang"`
}

type momoCreateResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
}

// momoRequestType is MoMo's ATM-card flow identifier.
const momoRequestType = "payWithATM"

// newCreateRequest builds and signs the create-payment body. The orderId
// carries the booking id and a fresh request id so every attempt is unique on
// MoMo's side while the callbacks still map back to one booking.
func (g *MoMoGateway) newCreateRequest(b *models.Booking, requestID string) momoCreateRequest {
	orderID := b.ID + ":" + requestID
	amount := strconv.FormatInt(b.TotalAmount, 10)
	orderInfo := "Thanh toan dat lich " + b.ID
	extraData := ""

	raw := "accessKey=" + g.AccessKey +
		"&amount=" + amount +
		"&extraData=" + extraData +
		"&ipnUrl=" + g.IPNURL +
		"&orderId=" + orderID +
		"&orderInfo=" + orderInfo +
		"&partnerCode=" + g.PartnerCode +
		"&redirectUrl=" + g.ReturnURL +
		"&requestId=" + requestID +
		"&requestType=" + momoRequestType

	return momoCreateRequest{
		PartnerCode: g.PartnerCode,
		AccessKey:   g.AccessKey,
		RequestID:   requestID,
		Amount:      amount,
		OrderID:     orderID,
		OrderInfo:   orderInfo,
		RedirectURL: g.ReturnURL,
		IPNURL:      g.IPNURL,
		ExtraData:   extraData,
		RequestType: momoRequestType,
		Signature:   g.sign(raw),
		Lang:        "vi",
	}
}

// CreateRedirect asks MoMo for a hosted payment URL.
func (g *MoMoGateway) CreateRedirect(ctx context.Context, b *models.Booking, _ string) (string, error) {
	req := g.newCreateRequest(b, uuid.NewString())

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", booking.NewExternalError("momo request failed: %v", err)
	}
	defer resp.Body.Close()

	var out momoCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", booking.NewExternalError("momo returned an unreadable response: %v", err)
	}
	if out.ResultCode != 0 {
		return "", booking.NewExternalError("momo rejected the payment: %s (code %d)", out.Message, out.ResultCode)
	}
	return out.PayURL, nil
}

// VerifyCallback validates the signature MoMo attaches to both the browser
// redirect and the IPN POST. resultCode "0" means the wallet charge went
// through.
func (g *MoMoGateway) VerifyCallback(params map[string]string) (*models.GatewayCallback, error) {
	got := params["signature"]
	if got == "" {
		return nil, booking.NewValidationError("missing momo signature")
	}

	raw := "accessKey=" + g.AccessKey +
		"&amount=" + params["amount"] +
		"&extraData=" + params["extraData"] +
		"&message=" + params["message"] +
		"&orderId=" + params["orderId"] +
		"&orderInfo=" + params["orderInfo"] +
		"&orderType=" + params["orderType"] +
		"&partnerCode=" + params["partnerCode"] +
		"&payType=" + params["payType"] +
		"&requestId=" + params["requestId"] +
		"&responseTime=" + params["responseTime"] +
		"&resultCode=" + params["resultCode"] +
		"&transId=" + params["transId"]
	if !hmac.Equal([]byte(got), []byte(g.sign(raw))) {
		return nil, booking.NewValidationError("invalid momo signature")
	}

	bookingID, _, found := strings.Cut(params["orderId"], ":")
	if !found || bookingID == "" {
		return nil, booking.NewValidationError("malformed momo orderId %q", params["orderId"])
	}

	code := params["resultCode"]
	cb := &models.GatewayCallback{
		BookingID: bookingID,
		Success:   code == "0",
		Message:   fmt.Sprintf("payment failed with code %s: %s", code, params["message"]),
		Details:   detailsOf(params),
	}
	if cb.Success {
		cb.Message = "payment completed"
	}
	return cb, nil
}

func (g *MoMoGateway) sign(raw string) string {
	mac := hmac.New(sha256.New, []byte(g.SecretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
