package payment

import (
	"testing"

	"nekokin/models"
	"nekokin/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMoMo() *MoMoGateway {
	return NewMoMoGateway("PARTNER01", "access-key", "secret-key",
		"https://api.example/api/payments/momo/return",
		"https://api.example/api/payments/momo/notify",
		"https://test-payment.momo.vn/v2/gateway/api/create")
}

// signedMoMoParams builds an IPN payload signed the way MoMo signs it.
func signedMoMoParams(g *MoMoGateway, orderID, resultCode string) map[string]string {
	params := map[string]string{
		"partnerCode":  "PARTNER01",
		"orderId":      orderID,
		"requestId":    "req-1",
		"amount":       "600000",
		"orderInfo":    "Thanh toan dat lich bk-1",
		"orderType":    "momo_wallet",
		"transId":      "2147483647",
		"resultCode":   resultCode,
		"message":      "Successful.",
		"payType":      "qr",
		"responseTime": "1767000000000",
		"extraData":    "",
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
	params["signature"] = g.sign(raw)
	return params
}

func TestMoMoCreateRequestUsesATMFlow(t *testing.T) {
	g := testMoMo()

	req := g.newCreateRequest(&models.Booking{ID: "bk-1", TotalAmount: 600_000}, "req-1")
	assert.Equal(t, "payWithATM", req.RequestType)
	assert.Equal(t, "bk-1:req-1", req.OrderID)
	assert.Equal(t, "600000", req.Amount)

	raw := "accessKey=" + g.AccessKey +
		"&amount=600000" +
		"&extraData=" +
		"&ipnUrl=" + g.IPNURL +
		"&orderId=bk-1:req-1" +
		"&orderInfo=Thanh toan dat lich bk-1" +
		"&partnerCode=" + g.PartnerCode +
		"&redirectUrl=" + g.ReturnURL +
		"&requestId=req-1" +
		"&requestType=payWithATM"
	assert.Equal(t, g.sign(raw), req.Signature)
}

func TestMoMoVerifyCallbackRoundTrip(t *testing.T) {
	g := testMoMo()

	cb, err := g.VerifyCallback(signedMoMoParams(g, "bk-1:req-1", "0"))
	require.NoError(t, err)
	assert.Equal(t, "bk-1", cb.BookingID)
	assert.True(t, cb.Success)

	cb, err = g.VerifyCallback(signedMoMoParams(g, "bk-1:req-1", "1006"))
	require.NoError(t, err)
	assert.False(t, cb.Success)
}

func TestMoMoVerifyCallbackRejectsTampering(t *testing.T) {
	g := testMoMo()

	params := signedMoMoParams(g, "bk-1:req-1", "1006")
	params["resultCode"] = "0"

	_, err := g.VerifyCallback(params)
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}

func TestMoMoVerifyCallbackRejectsMalformedOrderID(t *testing.T) {
	g := testMoMo()

	_, err := g.VerifyCallback(signedMoMoParams(g, "no-request-id", "0"))
	require.Error(t, err)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}
