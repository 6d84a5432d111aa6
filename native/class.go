package native

import "strconv"

// ErrorClass is the subsystem that recorded the last error.
// Values match libgit2's git_error_t.
type ErrorClass int

const (
	ClassNone ErrorClass = iota
	ClassNoMemory
	ClassOS
	ClassInvalid
	ClassReference
	ClassZlib
	ClassRepository
	ClassConfig
	ClassRegex
	ClassODB
	ClassIndex
	ClassObject
	ClassNet
	ClassTag
	ClassTree
	ClassIndexer
	ClassSSL
	ClassSubmodule
	ClassThread
	ClassStash
	ClassCheckout
	ClassFetchHead
	ClassMerge
	ClassSSH
	ClassFilter
	ClassRevert
	ClassCallback
	ClassCherryPick
	ClassDescribe
	ClassRebase
	ClassFilesystem
	ClassPatch
	ClassWorktree
	ClassSHA
	ClassHTTP
	ClassInternal
)

var classNames = [...]string{
	"none", "nomemory", "os", "invalid", "reference", "zlib", "repository",
	"config", "regex", "odb", "index", "object", "net", "tag", "tree",
	"indexer", "ssl", "submodule", "thread", "stash", "checkout", "fetchhead",
	"merge", "ssh", "filter", "revert", "callback", "cherrypick", "describe",
	"rebase", "filesystem", "patch", "worktree", "sha", "http", "internal",
}

func (c ErrorClass) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return "class(" + strconv.Itoa(int(c)) + ")"
}
