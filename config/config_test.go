package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayPalAPIBase(t *testing.T) {
	assert.Equal(t, "https://api-m.sandbox.paypal.com", Config{PayPalMode: "sandbox"}.PayPalAPIBase())
	assert.Equal(t, "https://api-m.paypal.com", Config{PayPalMode: "LIVE"}.PayPalAPIBase())

	// An explicitly configured endpoint always wins over the mode.
	c := Config{PayPalMode: "live", PayPalEndpoint: "https://paypal.test.local"}
	assert.Equal(t, "https://paypal.test.local", c.PayPalAPIBase())
}
