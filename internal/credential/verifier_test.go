package credential

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testKey = "test-session-key"

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testKey, "event-1")
	exp := time.Now().Add(5 * time.Minute).Unix()

	t.Run("valid token yields claims", func(t *testing.T) {
		token := signToken(t, testKey, jwt.MapClaims{"sub": "T1", "evt": "event-1", "exp": exp})
		claims, err := v.Verify(token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if claims.TicketID != "T1" {
			t.Fatalf("expected ticket T1, got %q", claims.TicketID)
		}
		if claims.EventID != "event-1" {
			t.Fatalf("expected event event-1, got %q", claims.EventID)
		}
	})

	t.Run("tid claim serves as subject fallback", func(t *testing.T) {
		token := signToken(t, testKey, jwt.MapClaims{"tid": "T2", "evt": "event-1", "exp": exp})
		claims, err := v.Verify(token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if claims.TicketID != "T2" {
			t.Fatalf("expected ticket T2, got %q", claims.TicketID)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testKey, jwt.MapClaims{
			"sub": "T1", "evt": "event-1",
			"exp": time.Now().Add(-1 * time.Minute).Unix(),
		})
		if _, err := v.Verify(token); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := signToken(t, "some-other-key", jwt.MapClaims{"sub": "T1", "evt": "event-1", "exp": exp})
		if _, err := v.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("structurally malformed token", func(t *testing.T) {
		if _, err := v.Verify("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("event claim mismatch", func(t *testing.T) {
		token := signToken(t, testKey, jwt.MapClaims{"sub": "T1", "evt": "other-event", "exp": exp})
		if _, err := v.Verify(token); !errors.Is(err, ErrClaimMismatch) {
			t.Fatalf("expected ErrClaimMismatch, got %v", err)
		}
	})

	t.Run("missing event claim", func(t *testing.T) {
		token := signToken(t, testKey, jwt.MapClaims{"sub": "T1", "exp": exp})
		if _, err := v.Verify(token); !errors.Is(err, ErrClaimMismatch) {
			t.Fatalf("expected ErrClaimMismatch, got %v", err)
		}
	})

	t.Run("missing subject claim", func(t *testing.T) {
		token := signToken(t, testKey, jwt.MapClaims{"evt": "event-1", "exp": exp})
		if _, err := v.Verify(token); !errors.Is(err, ErrClaimMismatch) {
			t.Fatalf("expected ErrClaimMismatch, got %v", err)
		}
	})
}
