package relay

import (
	"context"
	"errors"
	"net"

	"github.com/cursorcontext/architect/common/llm"
)

// User-facing messages for the failure conditions common enough to deserve
// targeted guidance. Anything else passes through untranslated so operators
// can diagnose unexpected upstream behavior.
var (
	ErrCreditsExhausted = errors.New("Anthropic API returned 400, the account may be out of credits. Check console.anthropic.com/billing.")
	ErrRegionBlocked    = errors.New("Anthropic API is not available from your region (403). Try a VPN or run from a supported region.")
	ErrUpstreamDNS      = errors.New("Cannot resolve api.anthropic.com. Check your network or DNS (try 8.8.8.8 / 1.1.1.1).")
	ErrTimeout          = errors.New("Request to the generation API timed out (>15s). Check your network connection.")
)

// Classify maps an upstream failure to its user-facing category.
func Classify(err error) error {
	if status, ok := llm.StatusCode(err); ok {
		switch status {
		case 400:
			return ErrCreditsExhausted
		case 403:
			return ErrRegionBlocked
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrUpstreamDNS
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	return err
}
