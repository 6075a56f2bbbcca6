// Package service contains the gate decision engine and the ticket
// directory it reads from. Denials are ordinary values of type Decision,
// never errors: an error crossing this package's boundary always means a
// dependency failed and no decision could be safely determined.
package service

// Deny reasons visible to gate clients. BAD_REQUEST is produced at the
// transport layer when the request framing is incomplete; USED and REVOKED
// double as ticket statuses, so a non-ACTIVE lookup denies with the status
// string itself.
const (
	ReasonBadRequest       = "BAD_REQUEST"
	ReasonExpiredOrInvalid = "EXPIRED_OR_INVALID"
	ReasonInvalid          = "INVALID"
	ReasonNotFound         = "NOT_FOUND"
	ReasonUsed             = "USED"
	ReasonRevoked          = "REVOKED"
)

// Decision is the outcome of one scan attempt. Allow carries the ticket
// identity and its entitlement set; a denial carries only the reason.
type Decision struct {
	Allow        bool
	Reason       string
	TicketID     string
	Entitlements []string
}

func allow(ticketID string, entitlements []string) Decision {
	if entitlements == nil {
		entitlements = []string{}
	}
	return Decision{Allow: true, TicketID: ticketID, Entitlements: entitlements}
}

func deny(reason string) Decision {
	return Decision{Allow: false, Reason: reason}
}
