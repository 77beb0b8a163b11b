package trophy

import (
	"fmt"

	"github.com/pushp314/runtrail-backend/internal/models"
)

// ConfigParseError reports a malformed, empty or kind-mismatched criteria
// config payload. It is raised at trophy save time so bad configs never
// reach evaluation.
type ConfigParseError struct {
	Kind   models.TrophyKind
	Reason string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("invalid criteria config for kind %s: %s", e.Kind, e.Reason)
}

func newConfigParseError(kind models.TrophyKind, format string, args ...interface{}) *ConfigParseError {
	return &ConfigParseError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedKindError means the registry has no evaluator for a trophy's
// kind. This is an operational/configuration bug and is logged loudly,
// never silently skipped.
type UnsupportedKindError struct {
	Kind models.TrophyKind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("no evaluator registered for trophy kind %s", e.Kind)
}

// HistoryError wraps a failed activity history query. It is propagated,
// not swallowed: treating a query failure as "criteria not met" would
// produce false negatives.
type HistoryError struct {
	Op  string
	Err error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("activity history query %s failed: %v", e.Op, e.Err)
}

func (e *HistoryError) Unwrap() error {
	return e.Err
}
