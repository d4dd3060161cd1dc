package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokenService(secret string) (*TokenService, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 9, 6, 12, 0, 0, 0, time.UTC)}
	return NewTokenService([]byte(secret), WithClock(clock.Now)), clock
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s, _ := newTestTokenService("super-secret")

	tok, err := s.Issue("user-123", models.AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	sub, err := s.Verify(tok, models.AccessToken)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if sub != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", sub, "user-123")
	}
}

func TestVerify_ExpiresExactlyAtTTL(t *testing.T) {
	t.Parallel()

	s, clock := newTestTokenService("secret")
	issuedAt := clock.now

	tok, err := s.Issue("u1", models.AccessToken, 3600*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	clock.now = issuedAt.Add(3599 * time.Second)
	if _, err := s.Verify(tok, models.AccessToken); err != nil {
		t.Fatalf("expected token valid one second before expiry, got %v", err)
	}

	clock.now = issuedAt.Add(3600 * time.Second)
	if _, err := s.Verify(tok, models.AccessToken); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired at expiry, got %v", err)
	}

	clock.now = issuedAt.Add(24 * time.Hour)
	if _, err := s.Verify(tok, models.AccessToken); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired after expiry, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, _ := newTestTokenService("right-secret")
	verifier, _ := newTestTokenService("wrong-secret")

	tok, err := issuer.Issue("u2", models.AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(tok, models.AccessToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	s, _ := newTestTokenService("secret")

	tok, err := s.Issue("victim", models.AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	payload["sub"] = "attacker"
	forged, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	if _, err := s.Verify(strings.Join(parts, "."), models.AccessToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for tampered payload, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	s, _ := newTestTokenService("k")

	for _, tok := range []string{"", "not.a.jwt", "garbage", "a.b"} {
		if _, err := s.Verify(tok, models.AccessToken); !errors.Is(err, common.ErrMalformedToken) {
			t.Fatalf("expected common.ErrMalformedToken for %q, got %v", tok, err)
		}
	}
}

func TestVerify_WrongKind(t *testing.T) {
	t.Parallel()

	s, _ := newTestTokenService("secret")

	refresh, err := s.Issue("u3", models.RefreshToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := s.Verify(refresh, models.AccessToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}

	access, err := s.Issue("u3", models.AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := s.Verify(access, models.RefreshToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
}

func TestIssue_TokensAreUnique(t *testing.T) {
	t.Parallel()

	s, _ := newTestTokenService("secret")

	a, err := s.Issue("u4", models.RefreshToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	b, err := s.Issue("u4", models.RefreshToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if a == b {
		t.Fatalf("two tokens issued in the same second must differ")
	}
}

func TestNewTokenService_EmptySecretIsRandom(t *testing.T) {
	t.Parallel()

	a := NewTokenService(nil)
	b := NewTokenService(nil)

	tok, err := a.Issue("u5", models.AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := a.Verify(tok, models.AccessToken); err != nil {
		t.Fatalf("own token rejected: %v", err)
	}
	if _, err := b.Verify(tok, models.AccessToken); err == nil {
		t.Fatalf("token from another process secret must be rejected")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	secret := []byte("package-level")

	tok, err := GenerateToken("u6", models.RefreshToken, secret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	sub, err := ParseToken(tok, models.RefreshToken, secret)
	if err != nil || sub != "u6" {
		t.Fatalf("ParseToken = (%q, %v)", sub, err)
	}

	expired, err := GenerateToken("u6", models.RefreshToken, secret, -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := ParseToken(expired, models.RefreshToken, secret); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}
