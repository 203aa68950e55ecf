package model

// FetchStatus is the lifecycle position of a data-bound view.
type FetchStatus int

const (
	StatusIdle    FetchStatus = iota // nothing requested yet (tracker only)
	StatusLoading                    // one fetch outstanding
	StatusReady                      // payload available
	StatusFailed                     // fetch or transform failed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// FetchState pairs a status with its payload. The payload is present iff
// the status is StatusReady.
type FetchState[T any] struct {
	status  FetchStatus
	payload *T
	err     error
}

// Loading returns a state with a fetch outstanding.
func Loading[T any]() FetchState[T] {
	return FetchState[T]{status: StatusLoading}
}

// Ready returns a state holding payload.
func Ready[T any](payload T) FetchState[T] {
	return FetchState[T]{status: StatusReady, payload: &payload}
}

// Failed returns a state recording err. The payload is cleared.
func Failed[T any](err error) FetchState[T] {
	return FetchState[T]{status: StatusFailed, err: err}
}

func (s FetchState[T]) Status() FetchStatus { return s.status }

// Payload returns the payload and whether the state is Ready.
func (s FetchState[T]) Payload() (T, bool) {
	if s.status != StatusReady || s.payload == nil {
		var zero T
		return zero, false
	}
	return *s.payload, true
}

// Err returns the failure cause for StatusFailed, nil otherwise.
func (s FetchState[T]) Err() error { return s.err }
