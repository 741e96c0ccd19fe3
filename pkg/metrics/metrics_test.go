package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then every collector is registered", func() {
				So(manager, ShouldNotBeNil)
				manager.RecordSignup("Chess Club")
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom naming and labels", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("school"),
				WithSubsystem("clubs"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.UpdateActivityCount(9)

			Convey("Then the collector names use them", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "school_clubs_activity_count")
				So(testutil.ToFloat64(manager.activities), ShouldEqual, 9.0)
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then it panics on the duplicate collectors", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestRosterMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When signups and removals are recorded", func() {
			manager.RecordSignup("Chess Club")
			manager.RecordSignup("Chess Club")
			manager.RecordRemoval("Chess Club")
			manager.RecordRejection("signup", "already_signed_up")
			manager.UpdateParticipants("Chess Club", 3)
			manager.UpdateTotalParticipants(21)

			Convey("Then the counters and gauges reflect them", func() {
				So(testutil.ToFloat64(manager.signups.WithLabelValues("Chess Club")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(manager.removals.WithLabelValues("Chess Club")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(manager.rejections.WithLabelValues("signup", "already_signed_up")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(manager.participants.WithLabelValues("Chess Club")), ShouldEqual, 3.0)
				So(testutil.ToFloat64(manager.totalParticipant), ShouldEqual, 21.0)
			})
		})
	})
}

func TestHTTPAndSystemMetrics(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When requests and errors are recorded", func() {
			manager.RecordHTTPRequest("activities", "GET", "200", 1.5)
			manager.RecordHTTPRequest("signup", "POST", "400", 0.5)
			manager.RecordHTTPError("signup", "POST", "client_error", "medium")

			Convey("Then they are counted per label set", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("activities", "GET", "200")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(manager.errorsByEndpoint.WithLabelValues("signup", "POST", "client_error")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(manager.errorsByType.WithLabelValues("client_error", "medium")), ShouldEqual, 1.0)
			})
		})

		Convey("When system figures are recorded", func() {
			manager.UpdateSystem(2048, 12, 0.25)

			Convey("Then the gauges hold the latest values", func() {
				So(testutil.ToFloat64(manager.systemMemoryUsage), ShouldEqual, 2048.0)
				So(testutil.ToFloat64(manager.systemGoroutineCount), ShouldEqual, 12.0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the package helpers do not panic", func() {
			So(func() {
				RecordSignup("Art Club")
				RecordRemoval("Art Club")
				RecordRejection("remove", "not_participant")
				UpdateParticipants("Art Club", 1)
				UpdateActivityCount(9)
				UpdateTotalParticipants(18)
				RecordHTTPRequest("healthz", "GET", "200", 0.1)
				RecordHTTPError("remove", "DELETE", "not_found", "medium")
				UpdateSystem(1024, 4, 0)
			}, ShouldNotPanic)
		})

		Convey("Then GetRegistry exposes the populated registry", func() {
			RecordSignup("Art Club")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
