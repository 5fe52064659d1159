package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"nekokin/models"
	"nekokin/services/booking"
)

// VNPay return/IPN response codes.
const (
	VNPaySuccessCode     = "00"
	VNPayIPNConfirmed    = "00"
	VNPayIPNAlreadyDone  = "02"
	VNPayIPNBadSignature = "97"
	VNPayIPNUnknown      = "99"
)

// VNPayGateway builds hosted-checkout URLs for the VNPay portal and verifies
// the signed parameters it sends back.
type VNPayGateway struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewVNPayGateway(tmnCode, hashSecret, payURL, returnURL string) *VNPayGateway {
	return &VNPayGateway{
		TmnCode:    tmnCode,
		HashSecret: hashSecret,
		PayURL:     payURL,
		ReturnURL:  returnURL,
		now:        time.Now,
	}
}

func (g *VNPayGateway) Name() models.PaymentMethod { return models.MethodVNPay }

func (g *VNPayGateway) CreateRedirect(_ context.Context, b *models.Booking, clientIP string) (string, error) {
	// The portal rejects IPv6 client addresses.
	if clientIP == "" || strings.Contains(clientIP, ":") {
		clientIP = "127.0.0.1"
	}

	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    g.TmnCode,
		"vnp_Locale":     "vn",
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     b.ID,
		"vnp_OrderInfo":  "Thanh toan dat lich " + b.ID,
		"vnp_OrderType":  "other",
		"vnp_Amount":     strconv.FormatInt(b.TotalAmount*100, 10),
		"vnp_ReturnUrl":  g.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": g.now().Format("20060102150405"),
	}
	signature := g.sign(params)

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("vnp_SecureHashType", "SHA512")
	values.Set("vnp_SecureHash", signature)
	return g.PayURL + "?" + values.Encode(), nil
}

// VerifyCallback checks the vnp_SecureHash over the remaining parameters and
// normalizes the result. vnp_ResponseCode "00" means the payment went through.
func (g *VNPayGateway) VerifyCallback(params map[string]string) (*models.GatewayCallback, error) {
	got := params["vnp_SecureHash"]
	if got == "" {
		return nil, booking.NewValidationError("missing vnp_SecureHash")
	}
	signed := make(map[string]string, len(params))
	for k, v := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		signed[k] = v
	}
	want := g.sign(signed)
	if !hmac.Equal([]byte(strings.ToLower(got)), []byte(want)) {
		return nil, booking.NewValidationError("invalid vnpay signature")
	}

	bookingID := params["vnp_TxnRef"]
	if bookingID == "" {
		return nil, booking.NewValidationError("missing vnp_TxnRef")
	}
	code := params["vnp_ResponseCode"]
	cb := &models.GatewayCallback{
		BookingID: bookingID,
		Success:   code == VNPaySuccessCode,
		Message:   "payment failed with code " + code,
		Details:   detailsOf(params),
	}
	if cb.Success {
		cb.Message = "payment completed"
	}
	return cb, nil
}

// sign hashes the parameters sorted by key, each value URL-encoded with
// spaces as '+', which is what the portal computes on its side.
func (g *VNPayGateway) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k]))
	}

	mac := hmac.New(sha512.New, []byte(g.HashSecret))
	mac.Write([]byte(sb.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
