package assistant

import "errors"

// ErrReportNotFound means the run finished but neither extraction strategy
// located a Markdown report in the thread's messages. Callers treat this as
// a distinct user-facing condition, not a provider failure.
var ErrReportNotFound = errors.New("generated markdown report not found in assistant messages")
