package utils

// Retry runs fn until it succeeds, returns an error retryable rejects, or
// attempts runs out. The last error is returned on exhaustion; exhausted is
// true only in that case.
func Retry(attempts int, retryable func(error) bool, fn func(attempt int) error) (exhausted bool, err error) {
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(attempt)
		if err == nil {
			return false, nil
		}
		if retryable == nil || !retryable(err) {
			return false, err
		}
	}
	return true, err
}
