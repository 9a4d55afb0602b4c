package store

import "github.com/mosaicnetworks/glomers/src/message"

// Store is an interface for backend stores.
type Store interface {
	// CacheSize retrieves the cacheSize setting that determines the maximum
	// number of journal entries kept in memory.
	CacheSize() int
	// SetMessage records an outgoing message under its msg_id. Messages must
	// be recorded in msg_id order without gaps.
	SetMessage(msgID uint64, env message.Envelope) error
	// GetMessages returns the recorded messages with a msg_id greater than
	// skip.
	GetMessages(skip uint64) ([]message.Envelope, error)
	// LastMessage returns the msg_id of the last recorded message, or 0.
	LastMessage() uint64
	// HasID reports whether a generated id was already handed out.
	HasID(id uint64) (bool, error)
	// AddID records a generated id.
	AddID(id uint64) error
	// IDCount returns the number of recorded ids.
	IDCount() int
	// Close closes the underlying database.
	Close() error
	// StorePath returns the filepath of the underlying database.
	StorePath() string
}
