package store

import (
	cm "github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/message"
)

// InmemStore implements the Store interface in memory. The journal only keeps
// the most recent messages; the ID ledger is never pruned.
type InmemStore struct {
	cacheSize int
	journal   *cm.RollingIndex[message.Envelope] //msg_id => Envelope
	ids       map[uint64]struct{}
}

// NewInmemStore creates a new InmemStore whose journal keeps at least
// cacheSize messages.
func NewInmemStore(cacheSize int) *InmemStore {
	return &InmemStore{
		cacheSize: cacheSize,
		journal:   cm.NewRollingIndex[message.Envelope]("Journal", cacheSize),
		ids:       make(map[uint64]struct{}),
	}
}

// CacheSize implements the Store interface.
func (s *InmemStore) CacheSize() int {
	return s.cacheSize
}

// SetMessage implements the Store interface.
func (s *InmemStore) SetMessage(msgID uint64, env message.Envelope) error {
	return s.journal.Set(env, int(msgID))
}

// GetMessages implements the Store interface.
func (s *InmemStore) GetMessages(skip uint64) ([]message.Envelope, error) {
	return s.journal.Get(int(skip))
}

// LastMessage implements the Store interface.
func (s *InmemStore) LastMessage() uint64 {
	last := s.journal.LastIndex()
	if last < 0 {
		return 0
	}
	return uint64(last)
}

// HasID implements the Store interface.
func (s *InmemStore) HasID(id uint64) (bool, error) {
	_, ok := s.ids[id]
	return ok, nil
}

// AddID implements the Store interface.
func (s *InmemStore) AddID(id uint64) error {
	s.ids[id] = struct{}{}
	return nil
}

// IDCount implements the Store interface.
func (s *InmemStore) IDCount() int {
	return len(s.ids)
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

// StorePath implements the Store interface. InmemStore has no path.
func (s *InmemStore) StorePath() string {
	return ""
}
