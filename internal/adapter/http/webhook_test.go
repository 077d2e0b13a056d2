package adapthttp_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	svix "github.com/svix/svix-webhooks/go"

	adapthttp "habitboard/internal/adapter/http"
	"habitboard/internal/adapter/memory"
	"habitboard/internal/app"
)

const webhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func newWebhookServer(t *testing.T) (*httptest.Server, *memory.DB) {
	t.Helper()

	db := memory.New()
	habitSvc := app.NewHabitService(db, db)
	progressSvc := app.NewProgressService(db)
	statsSvc := app.NewStatsService(habitSvc)
	identitySvc := app.NewIdentityService(db)

	wh, err := svix.NewWebhook(webhookSecret)
	if err != nil {
		t.Fatal(err)
	}

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := adapthttp.New(habitSvc, progressSvc, statsSvc, identitySvc, nil, wh, webDir).WithoutAuth()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, db
}

// signPayload produces the provider's signature for a payload: an
// HMAC-SHA256 over "{id}.{timestamp}.{body}" with the base64 portion of
// the shared secret as the key.
func signPayload(t *testing.T, msgID string, at time.Time, payload []byte) string {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(webhookSecret, "whsec_"))
	if err != nil {
		t.Fatal(err)
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + strconv.FormatInt(at.Unix(), 10) + "." + string(payload)))
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postEvent(t *testing.T, url string, payload []byte, msgID, signature string, at time.Time) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/api/webhooks/identity", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", strconv.FormatInt(at.Unix(), 10))
	req.Header.Set("svix-signature", signature)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

var userCreatedPayload = []byte(`{"type":"user.created","data":{"id":"user_abc","username":"ada","first_name":"Ada","last_name":"Lovelace","email_addresses":[{"email_address":"ada@example.com"}]}}`)

func TestIdentityWebhook_ValidEvent(t *testing.T) {
	ts, db := newWebhookServer(t)

	now := time.Now()
	sig := signPayload(t, "msg_1", now, userCreatedPayload)
	resp := postEvent(t, ts.URL, userCreatedPayload, "msg_1", sig, now)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close() //nolint:errcheck

	u, err := db.GetUser(context.Background(), "user_abc")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u == nil {
		t.Fatal("expected mirrored user")
	}
	if u.Email != "ada@example.com" || u.FirstName != "Ada" {
		t.Fatalf("unexpected mirrored fields: %+v", u)
	}
}

func TestIdentityWebhook_InvalidSignature(t *testing.T) {
	ts, db := newWebhookServer(t)

	now := time.Now()
	resp := postEvent(t, ts.URL, userCreatedPayload, "msg_1", "v1,bm90IGEgcmVhbCBzaWduYXR1cmU=", now)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close() //nolint:errcheck

	if db.UserCount() != 0 {
		t.Fatal("a rejected event must not mutate the mirror")
	}
}

func TestIdentityWebhook_TamperedPayload(t *testing.T) {
	ts, db := newWebhookServer(t)

	now := time.Now()
	sig := signPayload(t, "msg_1", now, userCreatedPayload)
	tampered := bytes.Replace(userCreatedPayload, []byte("user_abc"), []byte("user_evil"), 1)
	resp := postEvent(t, ts.URL, tampered, "msg_1", sig, now)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close() //nolint:errcheck

	if db.UserCount() != 0 {
		t.Fatal("a tampered event must not mutate the mirror")
	}
}

func TestIdentityWebhook_Idempotent(t *testing.T) {
	ts, db := newWebhookServer(t)

	now := time.Now()
	sig := signPayload(t, "msg_1", now, userCreatedPayload)
	for i := 0; i < 2; i++ {
		resp := postEvent(t, ts.URL, userCreatedPayload, "msg_1", sig, now)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("delivery %d: expected 200, got %d", i+1, resp.StatusCode)
		}
		resp.Body.Close() //nolint:errcheck
	}

	if db.UserCount() != 1 {
		t.Fatalf("expected one mirrored user after replay, got %d", db.UserCount())
	}
}

func TestIdentityWebhook_IgnoresOtherEvents(t *testing.T) {
	ts, db := newWebhookServer(t)

	payload := []byte(`{"type":"session.created","data":{"id":"sess_1"}}`)
	now := time.Now()
	sig := signPayload(t, "msg_2", now, payload)
	resp := postEvent(t, ts.URL, payload, "msg_2", sig, now)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close() //nolint:errcheck

	if db.UserCount() != 0 {
		t.Fatal("non-user events must not touch the mirror")
	}
}

func TestIdentityWebhook_NotConfigured(t *testing.T) {
	ts, _ := newTestServer(t) // no webhook secret wired

	resp, err := http.Post(ts.URL+"/api/webhooks/identity", "application/json", bytes.NewReader(userCreatedPayload))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	resp.Body.Close() //nolint:errcheck
}
