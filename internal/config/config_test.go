package config

import (
	"os"
	"testing"
)

func unsetBuildEnv() {
	_ = os.Unsetenv("GREENSPACE_BUILD_TARGET")
	_ = os.Unsetenv("GREENSPACE_DB_DRIVER")
}

func TestResolveDefaultsLocal(t *testing.T) {
	unsetBuildEnv()
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected mapping for local: %s", cfg.DBDriver)
	}
}

func TestResolveDefaultsCloud(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("GREENSPACE_BUILD_TARGET", "cloud")
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("unexpected mapping for cloud: %s", cfg.DBDriver)
	}
}

func TestResolveDefaultsOverride(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("GREENSPACE_BUILD_TARGET", "local")
	_ = os.Setenv("GREENSPACE_DB_DRIVER", "postgres")
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("override failed, got %s", cfg.DBDriver)
	}
}

func TestResolveDefaultsRejectsUnknownTarget(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("GREENSPACE_BUILD_TARGET", "orbital")
	defer unsetBuildEnv()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for unknown build target")
	}
}

func TestVegetationPctBounds(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("GREENSPACE_VEGETATION_PCT", "140")
	defer func() { _ = os.Unsetenv("GREENSPACE_VEGETATION_PCT") }()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for out-of-range vegetation percentage")
	}
}
