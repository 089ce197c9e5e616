package shell

// Outcome is the three-way state of one asynchronous fetch: not started or
// in flight (pending), resolved with a value, or failed with an error. It
// replaces the loading/error flag pairs that allow impossible combinations.
type Outcome[T any] struct {
	state outcomeState
	value T
	err   error
}

type outcomeState int

const (
	statePending outcomeState = iota
	stateOk
	stateFailed
)

// Pending is the zero value, spelled out for readability at call sites.
func Pending[T any]() Outcome[T] { return Outcome[T]{} }

func Ok[T any](v T) Outcome[T] { return Outcome[T]{state: stateOk, value: v} }

func Failed[T any](err error) Outcome[T] { return Outcome[T]{state: stateFailed, err: err} }

func (o Outcome[T]) IsPending() bool { return o.state == statePending }

// Value returns the resolved value; ok is false unless the fetch succeeded.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.state == stateOk
}

// Err returns the failure, or nil.
func (o Outcome[T]) Err() error {
	if o.state == stateFailed {
		return o.err
	}
	return nil
}
