// Package webhook verifies Standard Webhooks signatures on inbound hook
// deliveries (HMAC-SHA256, "v1" scheme).
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// tolerance bounds the accepted clock skew between sender and receiver.
const tolerance = 5 * time.Minute

var (
	ErrMissingHeaders   = errors.New("webhook: missing signature headers")
	ErrInvalidTimestamp = errors.New("webhook: invalid timestamp")
	ErrExpired          = errors.New("webhook: timestamp outside tolerance")
	ErrNoMatch          = errors.New("webhook: no matching signature")
)

// Verifier checks deliveries against a shared secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier builds a Verifier from the configured secret. The standard
// "whsec_" prefix and base64 encoding are handled; a raw secret is accepted
// as-is for local development.
func NewVerifier(secret string) (*Verifier, error) {
	trimmed := strings.TrimPrefix(secret, "whsec_")
	if trimmed == "" {
		return nil, errors.New("webhook: empty secret")
	}

	key, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		key = []byte(trimmed)
	}
	return &Verifier{secret: key, now: time.Now}, nil
}

// Verify validates the webhook-id/-timestamp/-signature headers against the
// raw request payload. The signed content is "{id}.{timestamp}.{payload}";
// the signature header may carry several space-separated candidates, any one
// matching "v1,<base64 mac>" passes.
func (v *Verifier) Verify(payload []byte, headers http.Header) error {
	id := headers.Get("webhook-id")
	timestamp := headers.Get("webhook-timestamp")
	signatures := headers.Get("webhook-signature")
	if id == "" || timestamp == "" || signatures == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	if delta := v.now().Sub(time.Unix(ts, 0)); delta > tolerance || delta < -tolerance {
		return ErrExpired
	}

	expected := v.sign(id, timestamp, payload)
	for _, candidate := range strings.Fields(signatures) {
		version, sig, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrNoMatch
}

func (v *Verifier) sign(id, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
