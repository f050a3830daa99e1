package coingecko

import "fmt"

// FetchError is the only error kind the client returns. Transport failures,
// unexpected status codes and malformed payloads all surface as a FetchError.
type FetchError struct {
	Op  string // "price" or "history"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("coingecko %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func fetchErr(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}
