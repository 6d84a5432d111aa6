package native

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"strings"
	"sync"
)

// Result is the captured outcome of one git CLI invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr.
func (r *Result) Combined() string {
	return r.Stdout + r.Stderr
}

// ExecError reports a git invocation that could not be started.
type ExecError struct {
	Args []string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to run git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Runner runs the git binary. A non-zero exit is reported through
// Result.ExitCode, not as an error.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (*Result, error)
}

// GitRunner runs the git found on PATH.
type GitRunner struct {
	// Binary overrides the executable name. Empty means "git".
	Binary string
}

// Run implements Runner. Output is forced to the C locale and colours and
// prompts are disabled so stderr can be matched reliably.
func (g *GitRunner) Run(ctx context.Context, dir string, args ...string) (*Result, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := osexec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"LC_ALL=C",
		"NO_COLOR=1",
		"TERM=dumb",
		"GIT_TERMINAL_PROMPT=0",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, &ExecError{Args: args, Err: err}
	}
	return res, nil
}

var (
	runnerMu sync.RWMutex
	runner   Runner = &GitRunner{}
)

// SetRunner replaces the git runner and returns a function restoring the
// previous one.
func SetRunner(r Runner) func() {
	runnerMu.Lock()
	prev := runner
	runner = r
	runnerMu.Unlock()
	return func() {
		runnerMu.Lock()
		runner = prev
		runnerMu.Unlock()
	}
}

func currentRunner() Runner {
	runnerMu.RLock()
	defer runnerMu.RUnlock()
	return runner
}

// cliPatterns maps git CLI diagnostics to codes. The first match wins.
var cliPatterns = []pattern{
	{".lock': File exists", CodeLocked, ClassFilesystem},
	{"is locked", CodeLocked, ClassFilesystem},
	{"you have unmerged files", CodeUnmerged, ClassMerge},
	{"is not possible because you have unmerged files", CodeUnmerged, ClassMerge},
	{"Your local changes to the following files would be overwritten", CodeUncommitted, ClassMerge},
	{"untracked working tree files would be overwritten", CodeConflict, ClassCheckout},
	{"CONFLICT (", CodeMergeConflict, ClassMerge},
	{"Automatic merge failed", CodeMergeConflict, ClassMerge},
	{"not something we can merge", CodeNotFound, ClassMerge},
	{"patch does not apply", CodeApplyFail, ClassPatch},
	{"corrupt patch", CodeApplyFail, ClassPatch},
	{"No valid patches in input", CodeApplyFail, ClassPatch},
}

// runGit runs git in r's worktree and turns a failure into a code.
// fallback is used when stderr matches no known diagnostic.
func (r *Repository) runGit(ctx context.Context, class ErrorClass, fallback Code, args ...string) (*Result, Code) {
	if !r.onDisk() {
		return nil, fail(ClassRepository, CodeInvalid, "operation requires an on-disk repository")
	}
	if r.bare {
		return nil, fail(ClassRepository, CodeBareRepo,
			"cannot run git %s. This operation is not allowed against bare repositories.", args[0])
	}

	res, err := currentRunner().Run(ctx, r.dir, args...)
	if err != nil {
		return res, failErr(ClassOS, err)
	}
	if res.ExitCode == 0 {
		return res, CodeOK
	}

	out := res.Combined()
	for _, p := range cliPatterns {
		if strings.Contains(out, p.substr) {
			return res, fail(p.class, p.code, "%s", firstLine(out, p.substr))
		}
	}
	return res, fail(class, fallback, "git %s exited with status %d: %s",
		args[0], res.ExitCode, strings.TrimSpace(res.Stderr))
}

// firstLine returns the output line containing substr.
func firstLine(out, substr string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, substr) {
			return strings.TrimSpace(line)
		}
	}
	return strings.TrimSpace(out)
}

func identityArgs(sig *Signature) []string {
	if sig == nil || sig.Name == "" {
		return nil
	}
	return []string{"-c", "user.name=" + sig.Name, "-c", "user.email=" + sig.Email}
}
