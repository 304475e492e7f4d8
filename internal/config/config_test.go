package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/futsal/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DBPath, convey.ShouldBeEmpty)
			convey.So(cfg.MinPerTeam, convey.ShouldEqual, 4)
			convey.So(cfg.DefaultTeamCount, convey.ShouldEqual, 2)
			convey.So(cfg.DefaultStrategy, convey.ShouldEqual, "tactical")
			convey.So(cfg.DefaultMode, convey.ShouldEqual, "fair")
			convey.So(cfg.RandomSeed, convey.ShouldEqual, 0)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad field", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"zero min", func(c *config.Config) { c.MinPerTeam = 0 }},
			{"four teams", func(c *config.Config) { c.DefaultTeamCount = 4 }},
			{"unknown strategy", func(c *config.Config) { c.DefaultStrategy = "random" }},
			{"unknown mode", func(c *config.Config) { c.DefaultMode = "chaos" }},
			{"unknown format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"zero refresh interval", func(c *config.Config) { c.MetricsRefreshInterval = 0 }},
		}
		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()
			convey.Convey("Then "+tc.name+" is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}

func TestConfig_ValidateNames(t *testing.T) {
	convey.Convey("Given strategy and mode names in mixed case", t, func() {
		cfg := config.New()
		cfg.DefaultStrategy = "Elite_Goalie"
		cfg.DefaultMode = "FUN"

		convey.Convey("Then they are accepted as the service accepts them", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
