package store

import (
	"encoding/binary"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/mosaicnetworks/glomers/src/message"
)

const idPrefix = "id_"

// BadgerStore persists the ID ledger in a Badger database so that a restarted
// node never hands out an id it already issued. The journal is only kept in
// memory.
type BadgerStore struct {
	inmemStore *InmemStore
	db         *badger.DB
	path       string
}

// NewBadgerStore creates a brand new Store with a new database.
func NewBadgerStore(cacheSize int, path string) (*BadgerStore, error) {
	handle, err := openDB(path)
	if err != nil {
		return nil, err
	}
	store := &BadgerStore{
		inmemStore: NewInmemStore(cacheSize),
		db:         handle,
		path:       path,
	}
	return store, nil
}

// LoadBadgerStore creates a Store from an existing database and loads the
// ledger it contains.
func LoadBadgerStore(cacheSize int, path string) (*BadgerStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	handle, err := openDB(path)
	if err != nil {
		return nil, err
	}
	store := &BadgerStore{
		inmemStore: NewInmemStore(cacheSize),
		db:         handle,
		path:       path,
	}

	ids, err := store.dbGetIDs()
	if err != nil {
		handle.Close()
		return nil, err
	}
	for _, id := range ids {
		store.inmemStore.AddID(id)
	}

	return store, nil
}

// LoadOrCreateBadgerStore loads the database at path if there is one, and
// creates it otherwise.
func LoadOrCreateBadgerStore(cacheSize int, path string) (*BadgerStore, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadBadgerStore(cacheSize, path)
	}
	return NewBadgerStore(cacheSize, path)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	return badger.Open(opts)
}

// CacheSize implements the Store interface.
func (s *BadgerStore) CacheSize() int {
	return s.inmemStore.CacheSize()
}

// SetMessage implements the Store interface.
func (s *BadgerStore) SetMessage(msgID uint64, env message.Envelope) error {
	return s.inmemStore.SetMessage(msgID, env)
}

// GetMessages implements the Store interface.
func (s *BadgerStore) GetMessages(skip uint64) ([]message.Envelope, error) {
	return s.inmemStore.GetMessages(skip)
}

// LastMessage implements the Store interface.
func (s *BadgerStore) LastMessage() uint64 {
	return s.inmemStore.LastMessage()
}

// HasID implements the Store interface. The whole ledger is loaded in memory,
// so the database is not consulted.
func (s *BadgerStore) HasID(id uint64) (bool, error) {
	return s.inmemStore.HasID(id)
}

// AddID implements the Store interface.
func (s *BadgerStore) AddID(id uint64) error {
	if err := s.dbSetID(id); err != nil {
		return err
	}
	return s.inmemStore.AddID(id)
}

// IDCount implements the Store interface.
func (s *BadgerStore) IDCount() int {
	return s.inmemStore.IDCount()
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	if err := s.inmemStore.Close(); err != nil {
		return err
	}
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

//++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++
//DB Methods

func (s *BadgerStore) dbSetID(id uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(idKey(id), []byte{1})
	})
}

func (s *BadgerStore) dbGetIDs() ([]uint64, error) {
	ids := []uint64{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(idPrefix)

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().Key()
			ids = append(ids, binary.BigEndian.Uint64(k[len(idPrefix):]))
		}

		return nil
	})
	return ids, err
}

func idKey(id uint64) []byte {
	key := make([]byte, len(idPrefix)+8)
	copy(key, idPrefix)
	binary.BigEndian.PutUint64(key[len(idPrefix):], id)
	return key
}
