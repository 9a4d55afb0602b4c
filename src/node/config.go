package node

import (
	"testing"
	"time"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/sirupsen/logrus"
)

// Config contains the settings of a Node that are not read from the command
// line.
type Config struct {
	// Clock returns the current time. It drives the timestamp field of
	// generated ids.
	Clock  func() time.Time
	Logger *logrus.Entry
}

// NewConfig ...
func NewConfig(clock func() time.Time, logger *logrus.Entry) *Config {
	return &Config{
		Clock:  clock,
		Logger: logger,
	}
}

// DefaultConfig returns a Config with the wall clock and a debug logger.
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.DebugLevel

	return &Config{
		Clock:  time.Now,
		Logger: logger.WithField("prefix", "node"),
	}
}

// TestConfig returns a Config whose logger writes to t.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.Logger = common.NewTestEntry(t, "node")
	return config
}
