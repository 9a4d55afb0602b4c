// Package node implements a single participant of a simulated
// message-passing cluster.
//
// The Core holds the node state (own Identifier, peers, outgoing msg_id
// sequence, id generator) and answers one request Envelope with exactly one
// reply Envelope. It performs no I/O of its own besides the Store.
//
// The Node wraps a Core with a Transport: it reads one line at a time,
// decodes it, dispatches it to the Core, and writes the encoded reply. Any
// error is fatal and stops the Node.
//
//  +------------------------------------------+
//  | Transport: ReadLine                      |
//  +------------------------------------------+
//              |  raw line
//  +------------------------------------------+
//  | message.Decode -> Core.Handle -> Encode  |  <- Store (journal, ledger)
//  +------------------------------------------+
//              |  raw line
//  +------------------------------------------+
//  | Transport: WriteLine                     |
//  +------------------------------------------+
package node
