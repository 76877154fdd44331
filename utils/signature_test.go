package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clerkSign(t *testing.T, payload []byte, msgID, timestamp, secret string) string {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(secret[len("whsec_"):])
	require.NoError(t, err)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyClerkSignature(t *testing.T) {
	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("clerk-test-key"))
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	msgID := "msg_abc"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	sig := clerkSign(t, payload, msgID, timestamp, secret)
	assert.NoError(t, VerifyClerkSignature(payload, msgID, timestamp, sig, secret))

	// Header may carry several candidates; one valid is enough
	header := "v1,AAAA " + sig
	assert.NoError(t, VerifyClerkSignature(payload, msgID, timestamp, header, secret))
}

func TestVerifyClerkSignatureRejects(t *testing.T) {
	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("clerk-test-key"))
	payload := []byte(`{"type":"user.created"}`)
	msgID := "msg_abc"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	sig := clerkSign(t, payload, msgID, timestamp, secret)

	assert.Error(t, VerifyClerkSignature(payload, "", timestamp, sig, secret))
	assert.Error(t, VerifyClerkSignature(payload, msgID, "not-a-number", sig, secret))
	assert.Error(t, VerifyClerkSignature(payload, msgID, timestamp, "v1,bm90LXRoZS1zaWc=", secret))

	// Tampered payload
	assert.Error(t, VerifyClerkSignature([]byte(`{"type":"user.deleted"}`), msgID, timestamp, sig, secret))

	// Wrong secret
	other := "whsec_" + base64.StdEncoding.EncodeToString([]byte("someone-else"))
	assert.Error(t, VerifyClerkSignature(payload, msgID, timestamp, sig, other))

	// Stale timestamp
	old := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	oldSig := clerkSign(t, payload, msgID, old, secret)
	assert.Error(t, VerifyClerkSignature(payload, msgID, old, oldSig, secret))
}

func stripeSign(payload []byte, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyStripeSignature(t *testing.T) {
	secret := "whsec_stripe_test"
	payload := []byte(`{"type":"checkout.session.completed"}`)
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	header := fmt.Sprintf("t=%s,v1=%s", timestamp, stripeSign(payload, timestamp, secret))
	assert.NoError(t, VerifyStripeSignature(payload, header, secret))

	// Extra scheme entries are ignored as long as one v1 matches
	header = fmt.Sprintf("t=%s,v0=deadbeef,v1=%s", timestamp, stripeSign(payload, timestamp, secret))
	assert.NoError(t, VerifyStripeSignature(payload, header, secret))
}

func TestVerifyStripeSignatureRejects(t *testing.T) {
	secret := "whsec_stripe_test"
	payload := []byte(`{"type":"checkout.session.completed"}`)
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	good := stripeSign(payload, timestamp, secret)

	assert.Error(t, VerifyStripeSignature(payload, "", secret))
	assert.Error(t, VerifyStripeSignature(payload, "v1="+good, secret))
	assert.Error(t, VerifyStripeSignature(payload, "t="+timestamp, secret))
	assert.Error(t, VerifyStripeSignature(payload, fmt.Sprintf("t=%s,v1=%s", timestamp, stripeSign([]byte("other"), timestamp, secret)), secret))

	old := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	assert.Error(t, VerifyStripeSignature(payload, fmt.Sprintf("t=%s,v1=%s", old, stripeSign(payload, old, secret)), secret))
}
