package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/futsal/internal/adapters/repository"
	"github.com/okian/futsal/internal/adapters/repository/sqlite"
	"github.com/okian/futsal/internal/config"
	"github.com/okian/futsal/pkg/logger"
	"github.com/okian/futsal/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainComponents(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When no db_path is configured", func() {
			store, err := openStore(ctx, cfg)

			convey.Convey("Then the roster is kept in memory", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := store.(*repository.MemoryStore)
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When db_path is configured", func() {
			cfg.DBPath = filepath.Join(t.TempDir(), "futsal.db")
			store, err := openStore(ctx, cfg)

			convey.Convey("Then the SQLite roster is used", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := store.(*sqlite.Store)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(store.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the service and mux are wired", func() {
			cfg.MinPerTeam = 2
			cfg.DefaultStrategy = "elite_goalie"
			svc := newService(cfg, logger.Get(), repository.NewMemoryStore())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()
			mux := newMux(ctx, svc)

			convey.Convey("Then configuration reaches the service", func() {
				stats := svc.GetStats()
				convey.So(stats["minPerTeam"], convey.ShouldEqual, 2)
				convey.So(stats["defaultStrategy"], convey.ShouldEqual, "elite_goalie")
			})

			convey.Convey("Then docs and API routes are served", func() {
				for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats", "/players"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest("GET", path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("Then the service metrics updater stops with its context", func() {
				tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
				defer cancel()
				convey.So(func() { startServiceMetricsUpdater(tctx, svc, 10*time.Millisecond) }, convey.ShouldNotPanic)
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When it runs once", func() {
			updateSystemMetrics()

			convey.Convey("Then memory and goroutine gauges are exported", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				joined := strings.Join(names, ",")
				convey.So(joined, convey.ShouldContainSubstring, "system_memory_usage_bytes")
				convey.So(joined, convey.ShouldContainSubstring, "system_goroutine_count")
			})
		})

		convey.Convey("When its context is already done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			convey.Convey("Then it returns immediately", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx, metrics.RefreshInterval()) }, convey.ShouldNotPanic)
			})
		})
	})
}
