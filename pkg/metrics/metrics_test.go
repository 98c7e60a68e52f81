package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should apply them", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			})

			Convey("And metric names should carry namespace and subsystem", func() {
				manager.RecordPuzzleSolved("day1")
				names, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, mf := range names {
					if mf.GetName() == "test_namespace_test_subsystem_puzzles_solved_total" {
						found = true
						So(mf.GetMetric()[0].GetLabel(), ShouldHaveLength, 2)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When zero values are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "codehunt")
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording HTTP requests", func() {
			manager.RecordHTTPRequest("day1", "GET", "200", 1.5)
			manager.RecordHTTPRequest("day1", "GET", "200", 2.5)
			manager.RecordHTTPRequest("day1", "GET", "400", 0.5)

			Convey("Then counts should be split by status", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("day1", "GET", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("day1", "GET", "400")), ShouldEqual, 1)
			})
		})

		Convey("When recording puzzle outcomes", func() {
			manager.RecordPuzzleSolved("day6")
			manager.RecordPuzzleError("day4_contest", "empty_herd")
			manager.RecordPacketSize(3)
			manager.RecordHerdSize("day4_strength", 4)
			manager.RecordTextLength(120)

			Convey("Then the counters should move", func() {
				So(testutil.ToFloat64(manager.puzzlesSolved.WithLabelValues("day6")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.puzzleErrors.WithLabelValues("day4_contest", "empty_herd")), ShouldEqual, 1)
				So(testutil.CollectAndCount(manager.packetSize), ShouldEqual, 1)
			})
		})

		Convey("When tracking in-flight requests", func() {
			manager.AddInFlight(1)
			manager.AddInFlight(1)
			manager.AddInFlight(-1)

			Convey("Then the gauge should reflect the balance", func() {
				So(testutil.ToFloat64(manager.httpInFlight), ShouldEqual, 1)
			})
		})

		Convey("When recording errors", func() {
			manager.RecordError("day_neg1_error", "GET", "server_error", "high")

			Convey("Then both error counters should move", func() {
				So(testutil.ToFloat64(manager.errorRateByType.WithLabelValues("server_error", "high")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.errorRateByEndpoint.WithLabelValues("day_neg1_error", "GET", "server_error")), ShouldEqual, 1)
			})
		})

		Convey("When updating system gauges", func() {
			manager.UpdateSystem(2048, 12, 0.3)

			Convey("Then the gauges should hold the values", func() {
				So(testutil.ToFloat64(manager.systemMemoryUsage), ShouldEqual, 2048)
				So(testutil.ToFloat64(manager.systemGoroutineCount), ShouldEqual, 12)
			})
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("When recording", func() {
			manager.RecordPuzzleSolved("day1")
			manager.RecordHTTPRequest("day1", "GET", "200", 1)

			Convey("Then nothing should be counted", func() {
				So(manager.Enabled(), ShouldBeFalse)
				So(testutil.ToFloat64(manager.puzzlesSolved.WithLabelValues("day1")), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When it records a solved puzzle", func() {
			Global().RecordPuzzleSolved("global_test")

			Convey("Then the custom registry should expose it", func() {
				err := testutil.GatherAndCompare(GetRegistry(), strings.NewReader(`
# HELP codehunt_server_puzzles_solved_total Total number of puzzle answers produced, by puzzle
# TYPE codehunt_server_puzzles_solved_total counter
codehunt_server_puzzles_solved_total{puzzle="global_test"} 1
`), "codehunt_server_puzzles_solved_total")
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global manager is rebuilt with options", t, func() {
		previous := GetRegistry()
		m := Init(WithNamespace("hunt"), WithSubsystem("edge"))
		defer Init()

		Convey("Then Global and GetRegistry follow the new manager", func() {
			So(Global(), ShouldEqual, m)
			So(GetRegistry(), ShouldNotEqual, previous)

			m.RecordPuzzleSolved("day1")
			n, err := testutil.GatherAndCount(GetRegistry(), "hunt_edge_puzzles_solved_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})
	})
}
