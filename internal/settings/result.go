package settings

// State is the outcome of one settings fetch.
type State int

// The zero State is StateAPIError, so an unset Result reads as a failure.
const (
	StateAPIError State = iota
	StateDomainNotLinked
	StateHealthy
)

func (s State) String() string {
	switch s {
	case StateHealthy:
		return "healthy"
	case StateDomainNotLinked:
		return "domain_not_linked"
	case StateAPIError:
		return "api_error"
	}
	return "unknown"
}

// Result is a tri-state built with Healthy, NotLinked or Failed.  Settings
// is non-nil iff the state is StateHealthy.
type Result struct {
	state    State
	settings *Effective
	err      error
}

// Healthy wraps e.  A nil e yields an API error result so the invariant
// above cannot be broken by a caller.
func Healthy(e *Effective) Result {
	if e == nil {
		return Failed(nil)
	}
	return Result{state: StateHealthy, settings: e}
}

// NotLinked is the result for a domain the provider does not know.
func NotLinked() Result { return Result{state: StateDomainNotLinked} }

// Failed records err for logging; it is never returned to page handlers.
func Failed(err error) Result { return Result{state: StateAPIError, err: err} }

// State reports which of the three outcomes r holds.
func (r Result) State() State { return r.state }

// Settings is the effective document, nil unless r is healthy.
func (r Result) Settings() *Effective { return r.settings }

// Err is the underlying failure of an API error result, if any.
func (r Result) Err() error { return r.err }

// IsDomainNotLinked reports StateDomainNotLinked.
func (r Result) IsDomainNotLinked() bool { return r.state == StateDomainNotLinked }

// IsAPIError reports StateAPIError.
func (r Result) IsAPIError() bool { return r.state == StateAPIError }
