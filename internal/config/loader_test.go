package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	convey.Convey("Given no file and no environment overrides", t, func() {
		cfg, err := Load(context.Background())

		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the defaults apply", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.EventQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 100)
			convey.So(cfg.DefaultLimit, convey.ShouldEqual, 10)
			convey.So(cfg.WeightContent, convey.ShouldEqual, 1.0)
			convey.So(cfg.WeightContext, convey.ShouldEqual, 1.0)
			convey.So(cfg.WeightArtist, convey.ShouldEqual, 1.5)
			convey.So(cfg.LanguageBonus, convey.ShouldEqual, 0.2)
			convey.So(cfg.SeedDemoData, convey.ShouldBeFalse)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		t.Setenv("ENCORE_ADDR", ":7070")
		t.Setenv("ENCORE_QUEUE_SIZE", "256")
		t.Setenv("ENCORE_WEIGHT_ARTIST", "2.5")
		t.Setenv("ENCORE_SEED_DEMO_DATA", "true")

		cfg, err := Load(context.Background())

		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then env values win over defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.EventQueueSize, convey.ShouldEqual, 256)
			convey.So(cfg.WeightArtist, convey.ShouldEqual, 2.5)
			convey.So(cfg.SeedDemoData, convey.ShouldBeTrue)

			convey.Convey("And untouched fields keep their defaults", func() {
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 100)
			})
		})
	})
}

func TestLoadFileLayer(t *testing.T) {
	convey.Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "encore.yaml")
		yaml := "addr: \":6060\"\nmax_limit: 50\ndefault_limit: 5\n"
		convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
		t.Setenv("ENCORE_CONFIG", path)

		convey.Convey("When loading without env overrides", func() {
			cfg, err := Load(context.Background())

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
			convey.So(cfg.DefaultLimit, convey.ShouldEqual, 5)
		})

		convey.Convey("When an env var overrides the file", func() {
			t.Setenv("ENCORE_ADDR", ":5050")

			cfg, err := Load(context.Background())

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
		})

		convey.Convey("When the file path does not exist", func() {
			t.Setenv("ENCORE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := Load(context.Background())
			convey.So(errors.Is(err, ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	convey.Convey("Given invalid configuration values", t, func() {
		cases := map[string][2]string{
			"empty addr":            {"ENCORE_ADDR", ""},
			"zero max_limit":        {"ENCORE_MAX_LIMIT", "0"},
			"default over max":      {"ENCORE_DEFAULT_LIMIT", "1000"},
			"negative weight":       {"ENCORE_WEIGHT_CONTENT", "-1"},
			"language bonus over 1": {"ENCORE_LANGUAGE_BONUS", "1.5"},
		}

		for name, kv := range cases {
			convey.Convey("When loading the "+name+" case", func() {
				t.Setenv(kv[0], kv[1])

				_, err := Load(context.Background())
				convey.So(errors.Is(err, ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
