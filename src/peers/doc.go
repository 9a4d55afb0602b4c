// Package peers manages the cluster membership a node learns when it is
// initialised.
//
// The membership is an ordered list of node Identifiers, as received in the
// init message. The order is the harness's and is preserved.
package peers
