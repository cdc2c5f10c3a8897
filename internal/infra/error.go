package infra

import (
	"errors"
	"log/slog"

	"supplier-quotes/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr logs the failure and returns it marked with the outcome class
// callers branch on (not found, not available).
func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	if kind == KindNotFound {
		slogger.Debug("Repository error: "+msg, logArgs...)
	} else {
		slogger.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	var out error = RepositoryError{Kind: kind, msg: msg, err: err}
	switch kind {
	case KindNotFound:
		return errs.Mark(out, errs.ErrQuoteNotFound)
	case KindUnavailable:
		return errs.Mark(out, errs.ErrQuoteNotAvailable)
	default:
		return out
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound    RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure   RepositoryErrorKind = "DB_FAILURE"
	KindUnavailable RepositoryErrorKind = "UNAVAILABLE"
	KindCorruptRow  RepositoryErrorKind = "CORRUPT_ROW"
)
