package smoketest_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mergington/activities/internal/adapters/http/api"
	repository "github.com/mergington/activities/internal/adapters/repository"
	service "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/smoketest"
	"github.com/mergington/activities/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newServer(ctx context.Context) (*httptest.Server, *service.Service) {
	store, err := repository.NewMemoryStore(ctx, model.DefaultActivities())
	So(err, ShouldBeNil)
	svc := service.New(store)
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	return httptest.NewServer(mux), svc
}

func TestRun(t *testing.T) {
	Convey("Given a running activities service", t, func() {
		ctx := context.Background()
		srv, svc := newServer(ctx)
		defer srv.Close()

		before, err := svc.Activity(ctx, "Drama Club")
		So(err, ShouldBeNil)

		Convey("When the smoke test runs against it", func() {
			stats, err := smoketest.Run(ctx, smoketest.Config{
				BaseURL:  srv.URL,
				Activity: "Drama Club",
				Workers:  8,
				Rounds:   40,
				Timeout:  5 * time.Second,
			})

			Convey("Then every step passes and the roster is restored", func() {
				So(err, ShouldBeNil)
				So(stats.Signups, ShouldEqual, 40)
				So(stats.Removals, ShouldEqual, 40)
				So(stats.SignupsFailed, ShouldEqual, 0)
				So(stats.Rejections, ShouldEqual, 2)
				after, err := svc.Activity(ctx, "Drama Club")
				So(err, ShouldBeNil)
				So(after.Participants, ShouldResemble, before.Participants)
			})
		})

		Convey("When the target activity does not exist", func() {
			_, err := smoketest.Run(ctx, smoketest.Config{BaseURL: srv.URL, Activity: "Quidditch", Rounds: 1})

			Convey("Then it fails before touching any roster", func() {
				So(errors.Is(err, smoketest.ErrActivityMissing), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service whose health check fails", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("Then Run reports it as unhealthy", func() {
			_, err := smoketest.Run(context.Background(), smoketest.Config{BaseURL: srv.URL, Rounds: 1})
			So(errors.Is(err, smoketest.ErrUnhealthy), ShouldBeTrue)
		})
	})
}

func TestRunThrottled(t *testing.T) {
	Convey("Given a running activities service", t, func() {
		ctx := context.Background()
		srv, _ := newServer(ctx)
		defer srv.Close()

		Convey("When the smoke test runs under a request rate cap", func() {
			stats, err := smoketest.Run(ctx, smoketest.Config{
				BaseURL: srv.URL,
				Workers: 4,
				Rounds:  5,
				RPS:     200,
			})

			Convey("Then it still passes", func() {
				So(err, ShouldBeNil)
				So(stats.Signups, ShouldEqual, 5)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := smoketest.Run(cctx, smoketest.Config{BaseURL: srv.URL, RPS: 1})

			Convey("Then it fails fast", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestConfigNormalize(t *testing.T) {
	Convey("Given an empty config", t, func() {
		cfg := smoketest.Config{BaseURL: "http://example.test/"}
		cfg.Normalize()

		Convey("Then defaults are filled in", func() {
			So(cfg.BaseURL, ShouldEqual, "http://example.test")
			So(cfg.Activity, ShouldEqual, smoketest.DefaultActivity)
			So(cfg.Rounds, ShouldEqual, smoketest.DefaultRounds)
			So(cfg.Timeout, ShouldEqual, smoketest.DefaultTimeout)
			So(cfg.Workers, ShouldBeGreaterThan, 0)
		})
	})
}

func TestNewEmail(t *testing.T) {
	Convey("Given generated emails", t, func() {
		a, b := smoketest.NewEmail(), smoketest.NewEmail()

		Convey("Then they are unique school addresses", func() {
			So(a, ShouldNotEqual, b)
			So(strings.HasPrefix(a, "smoke-"), ShouldBeTrue)
			So(strings.HasSuffix(a, "@mergington.edu"), ShouldBeTrue)
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Given the help text", t, func() {
		var buf bytes.Buffer
		smoketest.ShowHelp(&buf)

		Convey("Then it documents every flag", func() {
			for _, flag := range []string{"-url", "-activity", "-workers", "-rounds", "-timeout", "-rps", "-verbose"} {
				So(buf.String(), ShouldContainSubstring, flag)
			}
		})
	})
}
