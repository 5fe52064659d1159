package payment

import (
	"net/url"
	"testing"
	"time"

	"nekokin/models"
	"nekokin/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVNPay() *VNPayGateway {
	g := NewVNPayGateway("TMN01", "secret-key", "https://pay.example/paymentv2", "https://api.example/api/payments/vnpay/return")
	g.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return g
}

func signedReturnParams(g *VNPayGateway, bookingID, responseCode string) map[string]string {
	params := map[string]string{
		"vnp_TxnRef":       bookingID,
		"vnp_ResponseCode": responseCode,
		"vnp_Amount":       "60000000",
		"vnp_OrderInfo":    "Thanh toan dat lich " + bookingID,
		"vnp_TransactionNo": "14226112",
	}
	sig := g.sign(params)
	params["vnp_SecureHash"] = sig
	params["vnp_SecureHashType"] = "SHA512"
	return params
}

func TestVNPayCreateRedirectIsSigned(t *testing.T) {
	g := testVNPay()
	b := &models.Booking{ID: "bk-1", TotalAmount: 600_000}

	redirect, err := g.CreateRedirect(nil, b, "203.0.113.7")
	require.NoError(t, err)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "bk-1", q.Get("vnp_TxnRef"))
	// Amount is in hundredths of the base unit.
	assert.Equal(t, "60000000", q.Get("vnp_Amount"))
	assert.Equal(t, "203.0.113.7", q.Get("vnp_IpAddr"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))

	// The attached hash matches a recomputation over the other parameters.
	params := make(map[string]string)
	for k := range q {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		params[k] = q.Get(k)
	}
	assert.Equal(t, params["vnp_TxnRef"], "bk-1")
	assert.Equal(t, q.Get("vnp_SecureHash"), g.sign(params))
}

func TestVNPayCreateRedirectRejectsIPv6(t *testing.T) {
	g := testVNPay()
	b := &models.Booking{ID: "bk-1", TotalAmount: 100_000}

	redirect, err := g.CreateRedirect(nil, b, "2001:db8::1")
	require.NoError(t, err)

	u, _ := url.Parse(redirect)
	assert.Equal(t, "127.0.0.1", u.Query().Get("vnp_IpAddr"))
}

func TestVNPayVerifyCallbackRoundTrip(t *testing.T) {
	g := testVNPay()

	cb, err := g.VerifyCallback(signedReturnParams(g, "bk-1", "00"))
	require.NoError(t, err)
	assert.Equal(t, "bk-1", cb.BookingID)
	assert.True(t, cb.Success)

	cb, err = g.VerifyCallback(signedReturnParams(g, "bk-1", "24"))
	require.NoError(t, err)
	assert.False(t, cb.Success)
}

func TestVNPayVerifyCallbackRejectsTampering(t *testing.T) {
	g := testVNPay()

	params := signedReturnParams(g, "bk-1", "24")
	params["vnp_ResponseCode"] = "00"

	_, err := g.VerifyCallback(params)
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}

func TestVNPayVerifyCallbackRequiresHash(t *testing.T) {
	g := testVNPay()

	_, err := g.VerifyCallback(map[string]string{"vnp_TxnRef": "bk-1"})
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}
