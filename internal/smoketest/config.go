package smoketest

import (
	"runtime"
	"strings"
	"time"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Activity string        // Activity whose roster is exercised
	Workers  int           // Number of concurrent workers
	Rounds   int           // Number of unique students signed up and removed
	Timeout  time.Duration // HTTP request timeout
	RPS      float64       // Request rate cap across workers; 0 means none
	Verbose  bool          // Log every request outcome
}

// Activity is the wire shape of one activity as the API returns it.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse is the body of a successful roster change.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of a rejected request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Stats holds run statistics.
type Stats struct {
	Signups        int
	SignupsFailed  int
	Removals       int
	RemovalsFailed int
	Rejections     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Activity == "" {
		c.Activity = DefaultActivity
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU() * WorkerChannelMultiplier
	}
	if c.Rounds <= 0 {
		c.Rounds = DefaultRounds
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}
