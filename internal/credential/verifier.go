// Package credential verifies the signed, time-bounded scan tokens presented
// at a gate. Verification is pure: no I/O, no side effects, just the token,
// the shared key and the expected event identifier. Failure modes are
// sentinel errors so that callers can translate them into gate decisions
// with errors.Is instead of catching control-flow exceptions.
package credential

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid is returned when the token is structurally malformed or
// its signature does not validate under the configured key.
var ErrTokenInvalid = errors.New("credential: token invalid")

// ErrTokenExpired is returned when the token's validity window has elapsed.
// Externally it is reported in the same decision category as ErrTokenInvalid
// (EXPIRED_OR_INVALID); the distinction exists for logs.
var ErrTokenExpired = errors.New("credential: token expired")

// ErrClaimMismatch is returned when the subject claim is absent or the
// embedded event identifier does not match the event this gate serves.
var ErrClaimMismatch = errors.New("credential: claim mismatch")

// Claims carries the identifiers extracted from a verified scan token.
type Claims struct {
	TicketID string // subject of the token ("sub", with "tid" as legacy alias)
	EventID  string // event claim ("evt")
}

// Verifier validates HS256 scan tokens for a single configured event.
type Verifier struct {
	key           []byte
	expectedEvent string
}

// NewVerifier returns a Verifier bound to the shared session key and the
// event identifier this gate deployment serves.
func NewVerifier(sessionKey, expectedEvent string) *Verifier {
	return &Verifier{key: []byte(sessionKey), expectedEvent: expectedEvent}
}

// Verify parses and validates a scan token and extracts its claims.
// It returns ErrTokenExpired when the token is past its expiry,
// ErrTokenInvalid for any other parse or signature failure, and
// ErrClaimMismatch when the subject is missing or the event claim does not
// equal the configured event. Only HMAC signing methods are accepted;
// tokens signed with anything else are invalid regardless of content.
func (v *Verifier) Verify(token string) (Claims, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return v.key, nil
	})
	if err != nil {
		// Expiry is folded into the same external category as invalid, but
		// kept distinct here so operators can tell the two apart in logs.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	ticketID := stringClaim(claims, "sub")
	if ticketID == "" {
		ticketID = stringClaim(claims, "tid")
	}
	if ticketID == "" {
		return Claims{}, ErrClaimMismatch
	}
	evt := stringClaim(claims, "evt")
	if evt != v.expectedEvent {
		return Claims{}, ErrClaimMismatch
	}
	return Claims{TicketID: ticketID, EventID: evt}, nil
}

// stringClaim reads a claim as a string, returning "" when absent or of a
// different type.
func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
