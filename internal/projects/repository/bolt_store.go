package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

var projectsBucket = []byte("projects")

// BoltStore keeps lists in a local bbolt file, one key per owner.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (or creates) the database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(projectsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) List(ctx context.Context, ownerID string) (out []domain.Project, err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendBolt, "list", start, err) }(time.Now())

	var projects []domain.Project
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(projectsBucket).Get([]byte(ownerID))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &projects)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	return nonNil(projects), nil
}

func (s *BoltStore) Replace(ctx context.Context, ownerID string, projects []domain.Project) (err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendBolt, "replace", start, err) }(time.Now())

	if err := ownerRequired(ownerID); err != nil {
		return err
	}
	data, err := json.Marshal(nonNil(projects))
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(projectsBucket).Put([]byte(ownerID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write projects: %w", err)
	}
	return nil
}

func (s *BoltStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(projectsBucket) == nil {
			return fmt.Errorf("bucket %q missing", projectsBucket)
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
