package config

import (
	"fmt"
	"strings"
	"time"
)

// PaymentConfig describes the external payment API used to register products
// with Stripe. The timeout bounds the single registration attempt made during
// product creation.
type PaymentConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the payment configuration.
func (c *PaymentConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Payment ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", c.URL))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *PaymentConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("payment API URL is not configured")
	}
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("payment API URL must be an http(s) URL: %s", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("payment API timeout is not configured")
	}
	return nil
}
