package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/codehunt/internal/config"
	"github.com/okian/codehunt/pkg/logger"
	"github.com/okian/codehunt/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.InitWith(io.Discard, logger.FormatText)
}

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given the environment overrides the listen address", t, func() {
		_ = os.Setenv("HUNT_ADDR", ":8080")
		_ = os.Setenv("HUNT_MAX_BODY_BYTES", "2048")
		defer func() {
			_ = os.Unsetenv("HUNT_ADDR")
			_ = os.Unsetenv("HUNT_MAX_BODY_BYTES")
		}()

		convey.Convey("Then the server picks up the configured values", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)

			srv := newHTTPServer(context.Background(), cfg, logger.Get())
			convey.So(srv.Addr, convey.ShouldEqual, ":8080")
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			convey.So(srv.Handler, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		_ = os.Setenv("HUNT_ADDR", "")
		defer func() { _ = os.Unsetenv("HUNT_ADDR") }()

		convey.Convey("Then configuration loading fails", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestMainRoutes(t *testing.T) {
	convey.Convey("Given the fully wired handler", t, func() {
		cfg := config.New()
		cfg.MaxBodyBytes = 64
		srv := httptest.NewServer(newHTTPServer(context.Background(), cfg, logger.Get()).Handler)
		defer srv.Close()

		get := func(path string) (int, string) {
			resp, err := http.Get(srv.URL + path)
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			return resp.StatusCode, string(b)
		}

		convey.Convey("Then the puzzle routes answer", func() {
			code, body := get("/")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldEqual, "Hello, world!")

			code, body = get("/1/4/8")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldEqual, "1728")

			code, _ = get("/-1/error")
			convey.So(code, convey.ShouldEqual, http.StatusInternalServerError)
		})

		convey.Convey("Then the docs and metrics are mounted", func() {
			code, _ := get("/openapi.yaml")
			convey.So(code, convey.ShouldEqual, http.StatusOK)

			_, _ = get("/")
			code, body := get("/healthz")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldContainSubstring, "codehunt_server_http_requests_total")
		})

		convey.Convey("Then the configured body limit is enforced", func() {
			resp, err := http.Post(srv.URL+"/6", "text/plain", strings.NewReader(strings.Repeat("elf ", 64)))
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given metrics settings from configuration", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "hunt"
		cfg.MetricsSubsystem = "edge"
		cfg.MetricsLatencyBucketsMs = []float64{1, 10}
		cfg.MetricsLabels = map[string]string{"env": "test"}

		convey.Convey("When a manager is built from them", func() {
			reg := prometheus.NewRegistry()
			m := metrics.NewManager(append(metricsOptions(cfg), metrics.WithPrometheusRegistry(reg))...)
			m.RecordHTTPRequest("day1", http.MethodGet, "200", 5)

			convey.Convey("Then the series carry the configured names and labels", func() {
				families, err := reg.Gather()
				convey.So(err, convey.ShouldBeNil)

				var found bool
				for _, mf := range families {
					if mf.GetName() != "hunt_edge_http_request_duration_milliseconds" {
						continue
					}
					found = true
					metric := mf.GetMetric()[0]
					convey.So(metric.GetHistogram().GetBucket(), convey.ShouldHaveLength, 2)

					labels := make(map[string]string)
					for _, lp := range metric.GetLabel() {
						labels[lp.GetName()] = lp.GetValue()
					}
					convey.So(labels["env"], convey.ShouldEqual, "test")
				}
				convey.So(found, convey.ShouldBeTrue)
				convey.So(m.Enabled(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When metrics are disabled", func() {
			cfg.MetricsEnabled = false
			m := metrics.NewManager(append(metricsOptions(cfg), metrics.WithPrometheusRegistry(prometheus.NewRegistry()))...)

			convey.Convey("Then the manager does not record", func() {
				convey.So(m.Enabled(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given a manager on a private registry", t, func() {
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(prometheus.NewRegistry()),
			metrics.WithRefreshInterval(10*time.Millisecond),
		)

		convey.Convey("Then a single update does not panic", func() {
			convey.So(func() { updateSystemMetrics(m) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then the updater returns once the context is done", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx, m)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("updater did not stop")
			}
		})
	})
}
