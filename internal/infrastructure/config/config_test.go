package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BatchSize != 20000 {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, 20000)
	}
	if cfg.RoutesPath != "data/routes.csv" {
		t.Errorf("RoutesPath = %q, want %q", cfg.RoutesPath, "data/routes.csv")
	}
	if cfg.FlightsPath != "data/flights.csv" {
		t.Errorf("FlightsPath = %q, want %q", cfg.FlightsPath, "data/flights.csv")
	}
	if cfg.SubscriptionsPath != "data/subscriptions.csv" {
		t.Errorf("SubscriptionsPath = %q, want %q", cfg.SubscriptionsPath, "data/subscriptions.csv")
	}
	if cfg.OutputPath != "results.csv" {
		t.Errorf("OutputPath = %q, want %q", cfg.OutputPath, "results.csv")
	}
}

func TestLoadConfig_OverrideDefaults(t *testing.T) {
	os.Setenv("POSTGRES_DSN", "host=db user=fc dbname=fc")
	os.Setenv("IMPORT_BATCH_SIZE", "500")
	os.Setenv("ROUTES_CSV_PATH", "/srv/feeds/routes.csv")
	defer func() {
		os.Unsetenv("POSTGRES_DSN")
		os.Unsetenv("IMPORT_BATCH_SIZE")
		os.Unsetenv("ROUTES_CSV_PATH")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.PostgresDSN != "host=db user=fc dbname=fc" {
		t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
	}
	if cfg.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, 500)
	}
	if cfg.RoutesPath != "/srv/feeds/routes.csv" {
		t.Errorf("RoutesPath = %q", cfg.RoutesPath)
	}
}

func TestLoadConfig_InvalidBatchSizeFallsBack(t *testing.T) {
	os.Setenv("IMPORT_BATCH_SIZE", "lots")
	defer os.Unsetenv("IMPORT_BATCH_SIZE")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BatchSize != 20000 {
		t.Errorf("BatchSize = %d, want default %d", cfg.BatchSize, 20000)
	}
}
