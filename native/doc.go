// Package native is the version-control engine behind gitbind. It exposes
// repository operations in the style of a C library: each call returns a
// Code, zero on success and negative on failure, and a failing call records
// a class and message in a process-wide last-error slot.
//
// The engine is built on go-git for object storage, references, worktrees
// and transport, and shells out to the git CLI for merge commits and patch
// application, which go-git does not implement.
//
// Callers normally do not use this package directly. The giterr package
// turns a Code plus the last-error slot into a Go error, and the git package
// wraps both into an idiomatic API:
//
//	id, code := native.OidFromString(s)
//	if code.Failed() {
//		return giterr.Classify(int(code), "oid_fromstr")
//	}
//
// The last-error slot is shared by all goroutines. Read it immediately
// after the failing call.
package native
