package smoketest

import "io"

// ShowHelp writes usage information for the smoke tool to w.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Mergington Activities Smoke Test
================================

Signs unique students up for one activity concurrently, checks the roster,
removes them again and checks the rejections along the way.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity to exercise (default "Chess Club")
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -rounds int
        Number of unique students to sign up and remove (default 50)
  -timeout duration
        HTTP request timeout (default 10s)
  -rps float
        Cap on requests per second across all workers (default 0, no cap)
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  go run ./cmd/smoke -url http://localhost:8000 -rounds 500 -workers 32
  go run ./cmd/smoke -activity "Drama Club" -rps 20 -verbose
`)
}
