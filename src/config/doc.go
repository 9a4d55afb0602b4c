// Package config defines the configuration for a node process.
//
// The Config object is filled from defaults, then from an optional
// configuration file named glomers.toml (or .yaml, .json) in Config.DataDir,
// then from GLOMERS_* environment variables, and finally from command-line
// flags. Only the node's behaviour around the protocol is configurable; the
// protocol itself has no knobs.
//
//  datadir/
//    glomers.toml // (optional) configuration file
//    badger_db/   // (optional, --store) persistent ID ledger
package config
