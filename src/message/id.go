package message

import (
	"fmt"
	"strconv"
)

// Kind tells clients and nodes apart.
type Kind uint8

const (
	// Client is a participant that only sends requests.
	Client Kind = iota
	// Node is a cluster member.
	Node
)

// String ...
func (k Kind) String() string {
	switch k {
	case Client:
		return "Client"
	case Node:
		return "Node"
	default:
		return "Unknown"
	}
}

const (
	clientPrefix = 'c'
	nodePrefix   = 'n'
)

// Identifier references a participant of the cluster. It is a comparable value
// type and can be used as a map key.
type Identifier struct {
	kind  Kind
	index uint64
}

// ClientID returns the Identifier of client number index.
func ClientID(index uint64) Identifier {
	return Identifier{kind: Client, index: index}
}

// NodeID returns the Identifier of node number index.
func NodeID(index uint64) Identifier {
	return Identifier{kind: Node, index: index}
}

// Kind ...
func (id Identifier) Kind() Kind {
	return id.kind
}

// Index returns the numeric part of the Identifier.
func (id Identifier) Index() uint64 {
	return id.index
}

// String returns the canonical text form, e.g. "c3" or "n0".
func (id Identifier) String() string {
	prefix := nodePrefix
	if id.kind == Client {
		prefix = clientPrefix
	}
	return string(prefix) + strconv.FormatUint(id.index, 10)
}

// Compare orders Identifiers by kind, clients first, then by index. It
// returns -1, 0 or +1.
func (id Identifier) Compare(other Identifier) int {
	switch {
	case id.kind < other.kind:
		return -1
	case id.kind > other.kind:
		return 1
	case id.index < other.index:
		return -1
	case id.index > other.index:
		return 1
	default:
		return 0
	}
}

// ParseIdentifier is the inverse of Identifier.String.
func ParseIdentifier(s string) (Identifier, error) {
	if len(s) < 2 {
		return Identifier{}, NewParseErr(TooShort, s)
	}

	var kind Kind
	switch s[0] {
	case clientPrefix:
		kind = Client
	case nodePrefix:
		kind = Node
	default:
		return Identifier{}, NewParseErr(UnknownPrefix, s)
	}

	index, err := strconv.ParseUint(s[1:], 10, 64)
	if err != nil {
		return Identifier{}, NewParseErr(InvalidIndex, s)
	}

	return Identifier{kind: kind, index: index}, nil
}

// ParseErrType ...
type ParseErrType uint32

const (
	// TooShort means fewer than 2 characters.
	TooShort ParseErrType = iota
	// UnknownPrefix means the first character is neither 'c' nor 'n'.
	UnknownPrefix
	// InvalidIndex means the rest is not a non-negative decimal integer.
	InvalidIndex
)

// ParseErr is returned by ParseIdentifier.
type ParseErr struct {
	errType ParseErrType
	input   string
}

// NewParseErr ...
func NewParseErr(errType ParseErrType, input string) ParseErr {
	return ParseErr{
		errType: errType,
		input:   input,
	}
}

// Error ...
func (e ParseErr) Error() string {
	m := ""
	switch e.errType {
	case TooShort:
		m = "identifier too short"
	case UnknownPrefix:
		m = "invalid identifier prefix"
	case InvalidIndex:
		m = "invalid number for identifier"
	}
	return fmt.Sprintf("%s: %q", m, e.input)
}

// IsParse checks that an error is a ParseErr of the given type.
func IsParse(err error, t ParseErrType) bool {
	parseErr, ok := err.(ParseErr)
	return ok && parseErr.errType == t
}
