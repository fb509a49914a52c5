package config

import (
	"testing"

	errs "crossval/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CV_FOLDS", "")
	t.Setenv("CV_PARALLELISM", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CV.Folds != 5 {
		t.Errorf("default folds = %d, want 5", cfg.CV.Folds)
	}
	if cfg.CV.Parallelism != 1 {
		t.Errorf("default parallelism = %d, want 1", cfg.CV.Parallelism)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Enabled {
		t.Error("database should be disabled without DATABASE_URL")
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("CV_FOLDS", "10")
	t.Setenv("CV_SEED", "1234")
	t.Setenv("CV_PARALLELISM", "4")
	t.Setenv("DATABASE_URL", "postgres://localhost/crossval")
	t.Setenv("DATA_HAS_HEADER", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CV.Folds != 10 || cfg.CV.Seed != 1234 || cfg.CV.Parallelism != 4 {
		t.Errorf("CV config = %+v", cfg.CV)
	}
	if !cfg.Database.Enabled {
		t.Error("database should be enabled with DATABASE_URL set")
	}
	if cfg.Data.HasHeader {
		t.Error("DATA_HAS_HEADER=false was ignored")
	}
}

func TestLoad_RejectsInvalidFoldCount(t *testing.T) {
	t.Setenv("CV_FOLDS", "1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for CV_FOLDS=1")
	}
	if code := errs.GetCode(err); code != errs.CodeConfigInvalid {
		t.Errorf("error code = %q, want %q", code, errs.CodeConfigInvalid)
	}
}

func TestLoad_RejectsInvalidParallelism(t *testing.T) {
	t.Setenv("CV_PARALLELISM", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for CV_PARALLELISM=0")
	}
}
