package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/mergington/activities/internal/smoketest"
	"github.com/mergington/activities/pkg/logger"
)

const (
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", smoketest.DefaultBaseURL, "Base URL of the service")
		activity = flag.String("activity", smoketest.DefaultActivity, "Activity to exercise")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		rounds   = flag.Int("rounds", smoketest.DefaultRounds, "Number of unique students to sign up and remove")
		timeout  = flag.Duration("timeout", smoketest.DefaultTimeout, "HTTP request timeout")
		rps      = flag.Float64("rps", 0, "Cap on requests per second across all workers (0 means no cap)")
		verbose  = flag.Bool("verbose", false, "Log every request")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Usage = func() { smoketest.ShowHelp(os.Stderr) }
	flag.Parse()

	if *help {
		smoketest.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	_, err := smoketest.Run(ctx, smoketest.Config{
		BaseURL:  *baseURL,
		Activity: *activity,
		Workers:  *workers,
		Rounds:   *rounds,
		Timeout:  *timeout,
		RPS:      *rps,
		Verbose:  *verbose,
	})
	if err != nil {
		logger.Get().Error(ctx, "smoke test failed", logger.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
	logger.Get().Info(ctx, "smoke test passed")
}
