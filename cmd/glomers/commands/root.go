package commands

import (
	"os"
	"strings"

	"github.com/mosaicnetworks/glomers/src/config"
	"github.com/mosaicnetworks/glomers/src/net"
	"github.com/mosaicnetworks/glomers/src/node"
	"github.com/mosaicnetworks/glomers/src/service"
	"github.com/mosaicnetworks/glomers/src/store"
	"github.com/mosaicnetworks/glomers/src/telemetry"
	"github.com/mosaicnetworks/glomers/src/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var _config = config.NewDefaultConfig()

func init() {
	AddRunFlags(RootCmd)
}

//RootCmd is the root command for glomers. It runs a node over stdin and
//stdout until the end of input.
var RootCmd = &cobra.Command{
	Use:     "glomers",
	Short:   "Cluster node speaking line-delimited JSON on stdin/stdout",
	Args:    cobra.NoArgs,
	PreRunE: loadConfig,
	RunE:    runNode,
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runNode(cmd *cobra.Command, args []string) error {
	logger := _config.Logger()

	telemetry.SetBuildInfo(version.Version)

	s, err := newStore(logger)
	if err != nil {
		logger.WithError(err).Error("Cannot open store")
		return err
	}

	nodeConf := node.DefaultConfig()
	nodeConf.Logger = logger.WithField("prefix", "node")

	trans := net.NewStdioTransport(os.Stdin, os.Stdout)

	n := node.NewNode(nodeConf, s, trans)
	defer n.Shutdown()

	if _config.ServiceAddr != "" {
		serviceServer := service.NewService(_config.ServiceAddr, n, logger.WithField("prefix", "service"))
		go serviceServer.Serve()
	}

	if err := n.Run(); err != nil {
		logger.WithError(err).Error("Node stopped")
		return err
	}

	return nil
}

func newStore(logger *logrus.Entry) (store.Store, error) {
	if !_config.Store {
		return store.NewInmemStore(_config.CacheSize), nil
	}

	logger.WithField("path", _config.DatabaseDir).Debug("Loading badger store")

	return store.LoadOrCreateBadgerStore(_config.CacheSize, _config.DatabaseDir)
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("datadir", "d", _config.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-dir", _config.LogDir, "Also write info and debug logs to files in this directory")
	cmd.Flags().String("moniker", _config.Moniker, "Optional name of the node, shown in logs")
	cmd.Flags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for the HTTP service, disabled when empty")
	cmd.Flags().Int("cache-size", _config.CacheSize, "Number of outgoing messages kept in the journal")
	cmd.Flags().Bool("store", _config.Store, "Persist the ID ledger in badgerDB")
	cmd.Flags().String("db", _config.DatabaseDir, "Directory of the badger database")
}

//loadConfig reads the flags, the GLOMERS_* environment variables and the
//optional glomers.toml file in the data directory, in decreasing order of
//precedence.
func loadConfig(cmd *cobra.Command, args []string) error {
	err := viper.BindPFlags(cmd.Flags())
	if err != nil {
		return err
	}

	viper.SetEnvPrefix("GLOMERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath(viper.GetString("datadir"))
	viper.SetConfigName("glomers")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	conf, err := parseConfig()
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	_config = conf

	_config.Logger().WithFields(logrus.Fields{
		"datadir":        _config.DataDir,
		"log":            _config.LogLevel,
		"log-dir":        _config.LogDir,
		"moniker":        _config.Moniker,
		"service-listen": _config.ServiceAddr,
		"cache-size":     _config.CacheSize,
		"store":          _config.Store,
		"db":             _config.DatabaseDir,
	}).Debug("RUN")

	return nil
}

//Retrieve the default environment configuration.
func parseConfig() (*config.Config, error) {
	conf := config.NewDefaultConfig()
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, err
	}
	conf.SetDataDir(conf.DataDir)
	return conf, err
}
