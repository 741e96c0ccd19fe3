package smoketest

import "time"

// Defaults applied by Normalize.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultActivity = "Chess Club"
	DefaultRounds   = 50
	DefaultTimeout  = 10 * time.Second
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// EmailDomain is appended to every generated student address.
const EmailDomain = "mergington.edu"
