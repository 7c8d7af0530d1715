package utils

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_dGVzdC1zZWNyZXQta2V5"

func TestVerifyWebhookSignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"type":"user.created","data":{"id":"usr_1"}}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := SignWebhookPayload(testSecret, "msg_1", ts, payload)

	err := VerifyWebhookSignature(testSecret, "msg_1", ts, sig, payload)
	assert.NoError(t, err)
}

func TestVerifyWebhookSignatureMultipleSignatures(t *testing.T) {
	payload := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	good := SignWebhookPayload(testSecret, "msg_1", ts, payload)

	// rotated secrets send several space-separated versioned signatures
	err := VerifyWebhookSignature(testSecret, "msg_1", ts, "v1,bogus "+good, payload)
	assert.NoError(t, err)
}

func TestVerifyWebhookSignatureTamperedPayload(t *testing.T) {
	payload := []byte(`{"type":"user.created"}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := SignWebhookPayload(testSecret, "msg_1", ts, payload)

	err := VerifyWebhookSignature(testSecret, "msg_1", ts, sig, []byte(`{"type":"user.deleted"}`))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhookSignatureWrongID(t *testing.T) {
	payload := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := SignWebhookPayload(testSecret, "msg_1", ts, payload)

	err := VerifyWebhookSignature(testSecret, "msg_2", ts, sig, payload)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhookSignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	sig := SignWebhookPayload(testSecret, "msg_1", ts, payload)

	err := VerifyWebhookSignature(testSecret, "msg_1", ts, sig, payload)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestVerifyWebhookSignatureMissingHeaders(t *testing.T) {
	err := VerifyWebhookSignature(testSecret, "", "", "", []byte(`{}`))
	assert.ErrorIs(t, err, ErrMissingSignatureHeaders)

	err = VerifyWebhookSignature("", "msg_1", "1", "sig", []byte(`{}`))
	assert.ErrorIs(t, err, ErrMissingSignatureHeaders)
}

func TestVerifyWebhookSignatureSecretDecoding(t *testing.T) {
	// the whsec_ prefix is optional
	bare := base64.StdEncoding.EncodeToString([]byte("test-secret-key"))
	payload := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := SignWebhookPayload(testSecret, "msg_1", ts, payload)

	err := VerifyWebhookSignature(bare, "msg_1", ts, sig, payload)
	assert.NoError(t, err)
}
