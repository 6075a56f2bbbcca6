// Package repository provides data access to the durable ticket store.
// Sentinel errors defined here let higher layers such as the gate decision
// engine distinguish business outcomes (a ticket that simply does not
// exist) from dependency failures (the store being unreachable) without
// inspecting driver-specific error values.
package repository

import "errors"

// ErrTicketNotFound is returned when no ticket row exists for the requested
// identifier. The decision engine translates this into DENY(NOT_FOUND).
var ErrTicketNotFound = errors.New("ticket not found")
