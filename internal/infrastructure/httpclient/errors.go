package httpclient

import "fmt"

// StatusError is returned when the pricing API answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pricing API request to %s failed with status %d: %s", e.URL, e.Code, e.Body)
}
