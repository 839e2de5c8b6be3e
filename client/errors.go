package client

import (
	"errors"
	"fmt"
)

// ErrNoEndpoint is returned when every configured gateway failed.
var ErrNoEndpoint = errors.New("no usable api endpoint")

// ErrNoABI is returned by GetABI when the account has no ABI set.
var ErrNoABI = errors.New("account has no abi")

// APIError is the node error envelope returned with non-2xx status.
// It is carried through to callers unmodified.
type APIError struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Err     ErrDetail `json:"error"`
}

// ErrDetail is the inner chain error of an APIError.
type ErrDetail struct {
	Code    int              `json:"code"`
	Name    string           `json:"name"`
	What    string           `json:"what"`
	Details []ErrDetailEntry `json:"details"`
}

// ErrDetailEntry is one stack entry of an ErrDetail.
type ErrDetailEntry struct {
	Message    string `json:"message"`
	File       string `json:"file"`
	LineNumber int    `json:"line_number"`
	Method     string `json:"method"`
}

func (e *APIError) Error() string {
	if len(e.Err.Details) > 0 {
		return fmt.Sprintf("api error %v: %v: %v", e.Err.Code, e.Err.Name, e.Err.Details[0].Message)
	}
	if e.Err.Name != "" {
		return fmt.Sprintf("api error %v: %v: %v", e.Err.Code, e.Err.Name, e.Err.What)
	}
	return fmt.Sprintf("api error %v: %v", e.Code, e.Message)
}

// IsAPIErrorName reports whether err is a node error with the given
// inner error name, eg. "tx_duplicate".
func IsAPIErrorName(err error, name string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Err.Name == name
	}
	return false
}
