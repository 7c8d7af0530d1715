package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Webhook requests carry an id, a unix timestamp and a signature header.
// The signature is HMAC-SHA256 over "id.timestamp.payload" with the shared
// secret, base64 encoded, possibly versioned ("v1,<sig>") and space separated
// when the provider rotates secrets.

const webhookTolerance = 5 * time.Minute

var (
	ErrMissingSignatureHeaders = errors.New("missing webhook signature headers")
	ErrInvalidTimestamp        = errors.New("webhook timestamp invalid or outside tolerance")
	ErrInvalidSignature        = errors.New("webhook signature mismatch")
)

// VerifyWebhookSignature validates the signature triplet against the shared
// secret. It returns an error on any failure; callers must not trust the
// payload unless it returns nil.
func VerifyWebhookSignature(secret, msgID, timestamp, signature string, payload []byte) error {
	if secret == "" || msgID == "" || timestamp == "" || signature == "" {
		return ErrMissingSignatureHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	skew := time.Since(time.Unix(ts, 0))
	if skew > webhookTolerance || skew < -webhookTolerance {
		return ErrInvalidTimestamp
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, part := range strings.Split(signature, " ") {
		sig := part
		if idx := strings.Index(part, ","); idx != -1 {
			sig = part[idx+1:]
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// SignWebhookPayload produces the signature the provider would send; used by
// tooling and tests.
func SignWebhookPayload(secret, msgID, timestamp string, payload []byte) string {
	key, _ := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
