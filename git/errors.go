package git

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmgilman/gitbind/giterr"
	"github.com/jmgilman/gitbind/native"
)

// wrapError wraps an error with context. It preserves the original error
// chain for errors.Is/errors.As compatibility. If err is nil, returns nil.
func wrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// classify turns a failing engine code into a *giterr.Error and logs it.
// It must run before any other engine call so the last-error message is
// still recorded.
func classify(logger *slog.Logger, code native.Code, op string) *giterr.Error {
	classified := giterr.Classify(code, op)
	logFailure(logger, classified)
	return classified
}

// fail classifies code and wraps it with context.
func (r *Repository) fail(code native.Code, op, context string) error {
	return wrapError(classify(r.logger, code, op), context)
}

// logFailure records a classified error at debug level.
func logFailure(logger *slog.Logger, err *giterr.Error) {
	attrs := []slog.Attr{slog.String("kind", err.Kind().String())}
	if info, ok := err.Info(); ok {
		attrs = append(attrs,
			slog.String("op", info.Operation),
			slog.Int("code", int(info.Code)),
			slog.String("class", info.Class.String()),
		)
	}
	logger.LogAttrs(context.Background(), slog.LevelDebug, "git operation failed", attrs...)
}
