package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset() // LoadConfig mutates the global viper instance

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Errorf("ServerAddress = %q", cfg.ServerAddress)
	}
	if cfg.ModelID != "gpt-4o" {
		t.Errorf("ModelID = %q", cfg.ModelID)
	}
	if cfg.DartPadURLBudget != 7000 {
		t.Errorf("DartPadURLBudget = %d", cfg.DartPadURLBudget)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	yaml := "SERVER_ADDRESS: \":9090\"\nMODEL_ID: \"gpt-4o-mini\"\nDARTPAD_URL_BUDGET: 5000\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Errorf("ServerAddress = %q", cfg.ServerAddress)
	}
	if cfg.ModelID != "gpt-4o-mini" {
		t.Errorf("ModelID = %q", cfg.ModelID)
	}
	if cfg.DartPadURLBudget != 5000 {
		t.Errorf("DartPadURLBudget = %d", cfg.DartPadURLBudget)
	}
}
