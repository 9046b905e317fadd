package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiptime.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
	if cfg.Timezone.Mode != "simple" {
		t.Errorf("timezone.mode = %q, want simple", cfg.Timezone.Mode)
	}
	if cfg.Route.Speed != "medium" {
		t.Errorf("route.speed = %q, want medium", cfg.Route.Speed)
	}
	if cfg.Route.FrameInterval != 16*time.Millisecond {
		t.Errorf("route.frame_interval = %v, want 16ms", cfg.Route.FrameInterval)
	}
	if cfg.Clock.TickInterval != time.Second {
		t.Errorf("clock.tick_interval = %v, want 1s", cfg.Clock.TickInterval)
	}
	if cfg.Alert.Duration != 3*time.Second {
		t.Errorf("alert.duration = %v, want 3s", cfg.Alert.Duration)
	}
	if !cfg.Session.Enabled || cfg.Session.Path == "" {
		t.Errorf("session = %+v, want enabled with a path", cfg.Session)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
timezone:
  mode: political
route:
  speed: fast
  frame_interval: 33ms
ship:
  latitude: -33.9
  longitude: 151.2
session:
  enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Timezone.Mode != "political" || cfg.Route.Speed != "fast" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Route.FrameInterval != 33*time.Millisecond {
		t.Errorf("frame_interval = %v, want 33ms", cfg.Route.FrameInterval)
	}
	if cfg.Ship.Latitude != -33.9 || cfg.Ship.Longitude != 151.2 {
		t.Errorf("ship = %+v", cfg.Ship)
	}
	if cfg.Session.Enabled {
		t.Error("session should be disabled")
	}
	// Unset keys keep their defaults
	if cfg.Alert.Duration != 3*time.Second {
		t.Errorf("alert.duration = %v, want default 3s", cfg.Alert.Duration)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "route:\n  speed: slow\n")
	t.Setenv("SHIPTIME_ROUTE_SPEED", "fast")
	t.Setenv("SHIPTIME_ALERT_DURATION", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Route.Speed != "fast" {
		t.Errorf("route.speed = %q, want env value fast", cfg.Route.Speed)
	}
	if cfg.Alert.Duration != 5*time.Second {
		t.Errorf("alert.duration = %v, want 5s", cfg.Alert.Duration)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestLoad_SearchPathOptional(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without a file: %v", err)
	}
	if cfg.Route.Speed != "medium" {
		t.Errorf("route.speed = %q, want default", cfg.Route.Speed)
	}
}

func TestLoad_InvalidRejected(t *testing.T) {
	path := writeConfig(t, "route:\n  speed: warp\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "route.speed") {
		t.Errorf("Load error = %v, want route.speed problem", err)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Timezone.Mode = "lunar"
	cfg.Route.FrameInterval = 0
	cfg.Ship.Latitude = 91
	cfg.Session.Path = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"log.level", "timezone.mode", "route.frame_interval", "ship.latitude", "session.path"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %s: %v", want, err)
		}
	}
}
