// Package net implements the line-oriented transports a node uses to talk to
// the test harness.
//
// The harness starts one process per node and exchanges messages with it over
// the process's standard streams, one JSON document per line. A Transport
// hands complete lines to the node in arrival order and writes the node's
// replies back, one per line, in the order they are produced.
//
// - Stdio: reads from and writes to any io.Reader and io.Writer, stdin and
// stdout in production.
//
// - Inmem: a queue used in tests.
package net
