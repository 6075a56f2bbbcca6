package cache

import "testing"

// The key layout is shared with other systems reading the same Redis; a
// renamed prefix would silently break interoperability, so it is pinned
// here.
func TestKeyLayout(t *testing.T) {
	t.Parallel()

	if got := ticketKey("T1"); got != "ticket:T1" {
		t.Fatalf("ticket key = %q", got)
	}
	if got := replayKey("T1"); got != "used:T1" {
		t.Fatalf("replay key = %q", got)
	}
	if got := scanLogKey("event-1"); got != "scanlog:gate:event-1" {
		t.Fatalf("scan log key = %q", got)
	}
}
