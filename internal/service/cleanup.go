package service

import "log"

// logCleanupFailure records a failed best-effort file removal. Cleanup failures
// never abort the primary operation; an orphaned file is the accepted failure
// mode over a dangling reference.
func logCleanupFailure(kind, name string, err error) {
	log.Printf("cleanup: failed to remove old %s %q: %v", kind, name, err)
}
