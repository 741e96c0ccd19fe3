package smoketest

import "errors"

// Error constants.
var (
	ErrUnhealthy        = errors.New("service is not healthy")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrActivityMissing  = errors.New("target activity not listed")
	ErrVerification     = errors.New("roster verification failed")
)
