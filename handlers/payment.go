package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"nekokin/config"
	"nekokin/models"
	"nekokin/services/booking"
	"nekokin/services/payment"
	"nekokin/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// queryParams flattens the request query into the map the gateways verify.
func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

// clientResultURL builds the storefront URL the browser lands on after a
// gateway redirect.
func clientResultURL(cb *models.GatewayCallback) string {
	q := url.Values{}
	q.Set("bookingId", cb.BookingID)
	if cb.Success {
		q.Set("status", "success")
	} else {
		q.Set("status", "failed")
	}
	return config.AppConfig.ClientURL + "/payment/result?" + q.Encode()
}

// VNPayReturn handles the browser coming back from the VNPay portal.
func VNPayReturn(c *gin.Context) {
	cb, err := PaymentSvc.HandleReturn(models.MethodVNPay, queryParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, clientResultURL(cb))
}

// VNPayIPN handles VNPay's server-to-server confirmation. The portal retries
// until it sees RspCode 00, and expects 02 when the order was already
// settled.
func VNPayIPN(c *gin.Context) {
	cb, applied, err := PaymentSvc.HandleNotify(models.MethodVNPay, queryParams(c))
	switch {
	case err == nil && applied:
		c.JSON(http.StatusOK, gin.H{"RspCode": payment.VNPayIPNConfirmed, "Message": "Confirm Success"})
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"RspCode": payment.VNPayIPNAlreadyDone, "Message": "Order already confirmed"})
	case booking.CodeOf(err) == booking.CodeValidation:
		c.JSON(http.StatusOK, gin.H{"RspCode": payment.VNPayIPNBadSignature, "Message": "Invalid signature"})
	default:
		utils.GetLogger().Error("vnpay ipn failed", zap.Error(err))
		if cb != nil {
			utils.GetLogger().Error("vnpay ipn booking", zap.String("bookingID", cb.BookingID))
		}
		c.JSON(http.StatusOK, gin.H{"RspCode": payment.VNPayIPNUnknown, "Message": "Unknown error"})
	}
}

// MoMoReturn handles the browser coming back from the MoMo wallet.
func MoMoReturn(c *gin.Context) {
	cb, err := PaymentSvc.HandleReturn(models.MethodMoMo, queryParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, clientResultURL(cb))
}

// MoMoNotify handles MoMo's IPN POST. MoMo treats any 204 as acknowledged
// and retries on 5xx.
func MoMoNotify(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	params := make(map[string]string, len(body))
	for k, v := range body {
		params[k] = toParamString(v)
	}

	_, _, err := PaymentSvc.HandleNotify(models.MethodMoMo, params)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case booking.CodeOf(err) == booking.CodeValidation, booking.CodeOf(err) == booking.CodeNotFound:
		c.Status(http.StatusBadRequest)
	default:
		utils.GetLogger().Error("momo notify failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
	}
}

// toParamString renders a decoded JSON value the way MoMo signed it. Numbers
// arrive as float64 but were signed as integers.
func toParamString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return ""
	}
}

type paypalCreateOrderInput struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// PayPalCreateOrder opens a PayPal order for a pending booking and returns
// its order id for the client-side approval flow.
func PayPalCreateOrder(c *gin.Context) {
	var input paypalCreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := BookingSvc.Get(input.BookingID, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if b.PaymentStatus != models.PaymentPending {
		respondError(c, booking.NewConflictError("booking %s is already settled", b.ID))
		return
	}

	order, err := PayPal.CreateOrder(c.Request.Context(), b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orderID": order.ID, "status": order.Status})
}

type paypalCaptureOrderInput struct {
	OrderID string `json:"orderId" binding:"required"`
}

// PayPalCaptureOrder settles an approved PayPal order and records the
// outcome on the referenced booking.
func PayPalCaptureOrder(c *gin.Context) {
	var input paypalCaptureOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cb, err := PayPal.CaptureOrder(c.Request.Context(), input.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := PaymentSvc.ApplyCapture(cb); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookingId": cb.BookingID,
		"success":   cb.Success,
		"message":   cb.Message,
		"details":   cb.Details,
	})
}
