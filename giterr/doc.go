// Package giterr classifies the native engine's integer return codes into a
// closed set of error kinds.
//
// Classification is total. Each of the engine's named failure codes selects
// its own kind, and ERROR, PASSTHROUGH, RETRY and any unrecognised value fall
// back to KindGeneric:
//
//	if code := native.BranchDelete(repo, name); code.Failed() {
//	    return giterr.Classify(code, "branch_delete")
//	}
//
// Classify reads the engine's last-error slot once, so it must run right
// after the failing call. Two kinds are raised by the binding rather than the
// engine and carry no native context: KindUnknownType for object type tags
// the binding does not recognise, and KindDiff for failed diffs.
//
// *Error implements errors.PlatformError, so classified failures carry a
// structured code and a retry classification, and they match the package
// sentinels through errors.Is:
//
//	if errors.Is(err, giterr.ErrLocked) {
//	    // another process holds the lock
//	}
package giterr
