package ledger

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/hotelandino/booking-bff/internal/models"
)

// Store is the key-value persistence behind the ledger. It is deliberately
// narrow so the ledger logic can be tested without a real database file.
type Store interface {
	Put(hold models.Hold) error
	Get(id string) (*models.Hold, error)
	List() ([]models.Hold, error)
	Delete(id string) error
	Close() error
}

const bucketName = "holds"

// BoltStore persists holds in a single-file BoltDB bucket, keyed by the
// synthetic hold id. Writes are whole-record rewrites; the ledger is a
// single-writer cache, not a source of truth.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) a BoltDB database at the given path and
// ensures the holds bucket exists.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Put(hold models.Hold) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(hold)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketName)).Put([]byte(hold.ID), data)
	})
}

func (s *BoltStore) Get(id string) (*models.Hold, error) {
	var hold models.Hold

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(id))
		if v == nil {
			return models.ErrHoldNotFound
		}
		return json.Unmarshal(v, &hold)
	})
	if err != nil {
		return nil, err
	}

	return &hold, nil
}

func (s *BoltStore) List() ([]models.Hold, error) {
	var holds []models.Hold

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(k, v []byte) error {
			var h models.Hold
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			holds = append(holds, h)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Empty slice rather than nil so the JSON encoder emits [] instead of null.
	if holds == nil {
		holds = []models.Hold{}
	}
	return holds, nil
}

func (s *BoltStore) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		// Deleting a missing key is a no-op, which is the idempotent
		// behaviour we want for retried cancellations.
		return tx.Bucket([]byte(bucketName)).Delete([]byte(id))
	})
}

// MemoryStore is an in-process Store for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	holds map[string]models.Hold
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{holds: make(map[string]models.Hold)}
}

func (s *MemoryStore) Put(hold models.Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holds[hold.ID] = hold
	return nil
}

func (s *MemoryStore) Get(id string) (*models.Hold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.holds[id]
	if !ok {
		return nil, models.ErrHoldNotFound
	}
	return &h, nil
}

func (s *MemoryStore) List() ([]models.Hold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	holds := make([]models.Hold, 0, len(s.holds))
	for _, h := range s.holds {
		holds = append(holds, h)
	}
	// Map iteration order is random; keep the listing stable like Bolt's
	// key-ordered ForEach.
	sort.Slice(holds, func(i, j int) bool { return holds[i].ID < holds[j].ID })
	return holds, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holds, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
