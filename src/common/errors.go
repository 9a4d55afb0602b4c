package common

import "fmt"

// ProtocolErrType enumerates the conditions that stop a node. None of them has
// a defined recovery.
type ProtocolErrType uint32

const (
	// Decode means an input line is not JSON or does not match any known
	// envelope, body, payload or identifier shape.
	Decode ProtocolErrType = iota
	// UnexpectedMessage means a well-formed message the node is not prepared
	// to answer, such as a reply-only type received as a request.
	UnexpectedMessage
	// Sequencing means a request arrived before the node was initialised.
	Sequencing
	// Storage means the backing store failed.
	Storage
)

// String ...
func (t ProtocolErrType) String() string {
	switch t {
	case Decode:
		return "Decode"
	case UnexpectedMessage:
		return "UnexpectedMessage"
	case Sequencing:
		return "Sequencing"
	case Storage:
		return "Storage"
	default:
		return "Unknown"
	}
}

// ProtocolErr is the error type returned by the message and node packages.
type ProtocolErr struct {
	errType ProtocolErrType
	detail  string
	cause   error
}

// NewProtocolErr ...
func NewProtocolErr(errType ProtocolErrType, detail string, cause error) ProtocolErr {
	return ProtocolErr{
		errType: errType,
		detail:  detail,
		cause:   cause,
	}
}

// Type returns the kind of the error.
func (e ProtocolErr) Type() ProtocolErrType {
	return e.errType
}

// Error ...
func (e ProtocolErr) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.errType, e.detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.errType, e.detail)
}

// Unwrap returns the underlying error, if any.
func (e ProtocolErr) Unwrap() error {
	return e.cause
}

// IsProtocol checks that an error is a ProtocolErr of the given type.
func IsProtocol(err error, t ProtocolErrType) bool {
	protoErr, ok := err.(ProtocolErr)
	return ok && protoErr.errType == t
}

// StoreErrType ...
type StoreErrType uint32

const (
	// KeyNotFound ...
	KeyNotFound StoreErrType = iota
	// TooLate ...
	TooLate
	// SkippedIndex ...
	SkippedIndex
	// Empty ...
	Empty
)

// StoreErr is returned by caches and stores.
type StoreErr struct {
	dataType string
	errType  StoreErrType
	key      string
}

// NewStoreErr ...
func NewStoreErr(dataType string, errType StoreErrType, key string) StoreErr {
	return StoreErr{
		dataType: dataType,
		errType:  errType,
		key:      key,
	}
}

// Error ...
func (e StoreErr) Error() string {
	m := ""
	switch e.errType {
	case KeyNotFound:
		m = "Not Found"
	case TooLate:
		m = "Too Late"
	case SkippedIndex:
		m = "Skipped Index"
	case Empty:
		m = "Empty"
	}

	return fmt.Sprintf("%s, %s, %s", e.dataType, e.key, m)
}

// IsStore checks that an error is of type StoreErr and that it's code matches
// the provided StoreErr code.
func IsStore(err error, t StoreErrType) bool {
	storeErr, ok := err.(StoreErr)
	return ok && storeErr.errType == t
}
