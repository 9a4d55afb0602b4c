package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "glomers")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	toml := "cache-size = 42\nmoniker = \"alpha\"\n"
	if err := ioutil.WriteFile(filepath.Join(dir, "glomers.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	os.Setenv("GLOMERS_LOG", "debug")
	defer os.Unsetenv("GLOMERS_LOG")

	if err := RootCmd.Flags().Set("datadir", dir); err != nil {
		t.Fatal(err)
	}
	if err := RootCmd.Flags().Set("service-listen", "127.0.0.1:8080"); err != nil {
		t.Fatal(err)
	}

	if err := loadConfig(RootCmd, nil); err != nil {
		t.Fatal(err)
	}

	if _config.CacheSize != 42 {
		t.Fatalf("cache-size should be read from glomers.toml, got %d", _config.CacheSize)
	}
	if _config.Moniker != "alpha" {
		t.Fatalf("moniker should be read from glomers.toml, got %q", _config.Moniker)
	}
	if _config.LogLevel != "debug" {
		t.Fatalf("log should be read from GLOMERS_LOG, got %q", _config.LogLevel)
	}
	if _config.ServiceAddr != "127.0.0.1:8080" {
		t.Fatalf("service-listen should be read from flags, got %q", _config.ServiceAddr)
	}
	if _config.DatabaseDir != filepath.Join(dir, "badger_db") {
		t.Fatalf("db should follow datadir, got %q", _config.DatabaseDir)
	}
}

func TestLoadConfigRejectsCacheSize(t *testing.T) {
	prev := _config

	for _, size := range []string{"0", "-1"} {
		if err := RootCmd.Flags().Set("cache-size", size); err != nil {
			t.Fatal(err)
		}
		if err := loadConfig(RootCmd, nil); err == nil {
			t.Fatalf("cache-size %s should be rejected", size)
		}
		if _config != prev {
			t.Fatalf("a rejected configuration should not replace the current one")
		}
	}
}
