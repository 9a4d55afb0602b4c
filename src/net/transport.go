package net

// Transport provides an interface for line transports to allow a node to
// receive requests and send replies.
type Transport interface {

	// ReadLine returns the next complete input line without its line
	// terminator. It returns io.EOF, and no line, once the input is exhausted.
	ReadLine() ([]byte, error)

	// WriteLine writes line followed by a newline and makes it visible to the
	// reader before returning.
	WriteLine(line []byte) error

	// Close permanently closes a transport, freeing associated resources.
	Close() error
}
