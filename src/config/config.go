package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"

	// DefaultInfoLogFile and DefaultDebugLogFile are the names of the log files
	// written to LogDir.
	DefaultInfoLogFile  = "glomers_info.log"
	DefaultDebugLogFile = "glomers_debug.log"
)

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultLogDir      = ""
	DefaultServiceAddr = ""
	DefaultCacheSize   = 10000
	DefaultStore       = false
)

// Config contains all the configuration properties of a node process.
type Config struct {
	// DataDir is the top-level directory containing the configuration file and
	// the database.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogDir, when set, is a directory where info and debug records are also
	// written to files. Records always go to stderr, stdout carries replies.
	LogDir string `mapstructure:"log-dir"`

	// ServiceAddr is the address:port of the optional HTTP service. The
	// service is disabled when empty, which is the default because a test
	// harness usually starts many nodes on the same host.
	ServiceAddr string `mapstructure:"service-listen"`

	// CacheSize is the minimum number of outgoing messages kept in the
	// journal.
	CacheSize int `mapstructure:"cache-size"`

	// Store activates the persistent ID ledger.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// Moniker defines the friendly name of this node in logs.
	Moniker string `mapstructure:"moniker"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		LogDir:      DefaultLogDir,
		ServiceAddr: DefaultServiceAddr,
		CacheSize:   DefaultCacheSize,
		Store:       DefaultStore,
		DatabaseDir: DefaultDatabaseDir(),
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t)
	return config
}

// Validate checks the values that cannot be used as given.
func (c *Config) Validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache-size must be positive, got %d", c.CacheSize)
	}
	return nil
}

// SetDataDir sets the top-level directory, and updates the database directory
// if it is currently set to the default value. If the database directory is
// not currently the default, it means the user has explicitely set it to
// something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Logger returns a formatted logrus Entry, with prefix set to "glomers".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Out = os.Stderr
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
		if c.LogDir != "" {
			c.logger.Hooks.Add(lfshook.NewHook(
				c.logFiles(),
				&logrus.TextFormatter{},
			))
		}
	}
	entry := c.logger.WithField("prefix", "glomers")
	if c.Moniker != "" {
		entry = entry.WithField("moniker", c.Moniker)
	}
	return entry
}

func (c *Config) logFiles() lfshook.PathMap {
	return lfshook.PathMap{
		logrus.InfoLevel:  filepath.Join(c.LogDir, DefaultInfoLogFile),
		logrus.DebugLevel: filepath.Join(c.LogDir, DefaultDebugLogFile),
	}
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level config based
// on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Glomers")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Glomers")
		} else {
			return filepath.Join(home, ".glomers")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
