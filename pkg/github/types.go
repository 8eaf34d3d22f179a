package github

import "fmt"

const perPage = 100

// APIError is returned for any response of the repositories endpoint other
// than 200 OK.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api responded with status %d: %s", e.StatusCode, e.Body)
}
