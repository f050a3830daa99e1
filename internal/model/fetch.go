package model

// FetchStatus is the tag of a FetchState.
type FetchStatus int

const (
	StatusLoading FetchStatus = iota
	StatusSuccess
	StatusFailure
)

func (s FetchStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// FetchState tracks one widget's fetch attempt. Exactly one status holds at a
// time; Value is only meaningful on success and Err only on failure.
type FetchState[T any] struct {
	Status FetchStatus
	Value  T
	Err    string
}

// Loading returns the state every new attempt starts in.
func Loading[T any]() FetchState[T] {
	return FetchState[T]{Status: StatusLoading}
}

// Succeeded returns a success state carrying v.
func Succeeded[T any](v T) FetchState[T] {
	return FetchState[T]{Status: StatusSuccess, Value: v}
}

// Failed returns a failure state carrying a user-facing message.
func Failed[T any](msg string) FetchState[T] {
	return FetchState[T]{Status: StatusFailure, Err: msg}
}

func (s FetchState[T]) IsLoading() bool { return s.Status == StatusLoading }
func (s FetchState[T]) IsSuccess() bool { return s.Status == StatusSuccess }
func (s FetchState[T]) IsFailure() bool { return s.Status == StatusFailure }
