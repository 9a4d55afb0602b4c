// Package message implements the wire protocol spoken between a node, its
// peers and the clients of a simulated cluster.
//
// Every message is an Envelope carrying the Identifier of its sender and
// recipient, and a Body. The Body holds a Payload, which is one of a closed set
// of message types, and two optional correlation fields: msg_id, the sender's
// own sequence number, and in_reply_to, the msg_id of the request a reply
// answers.
//
// On the wire an Envelope is a single line of JSON. The Body's correlation
// fields sit next to the type tag and the payload fields:
//
//  {"src":"c1","dest":"n1","body":{"type":"echo","msg_id":2,"echo":"hello"}}
//
// Identifiers are written as a one-letter prefix, c for clients and n for
// nodes, followed by a decimal index.
package message
