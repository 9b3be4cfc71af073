// Package redis persists call records in Redis, keeping a ZSET index scored
// by call start time so recent calls list cheaply.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/pkarlsen/switchboard/pkg/call"
)

// Store implements call.Store on Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL expires call records after ttl (0 keeps them forever).
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient creates a store on an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "switchboard:call:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save upserts the record and indexes it by start time.
func (s *Store) Save(ctx context.Context, rec call.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling call record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(rec.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(rec.StartedAt.UnixNano()),
		Member: rec.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving call record: %w", err)
	}
	return nil
}

// Load fetches one record by ID.
func (s *Store) Load(ctx context.Context, id string) (call.Record, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return call.Record{}, call.ErrNotFound
		}
		return call.Record{}, fmt.Errorf("loading call record: %w", err)
	}

	var rec call.Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return call.Record{}, fmt.Errorf("unmarshaling call record: %w", err)
	}
	return rec, nil
}

// List returns records newest first. Index entries whose record expired are
// pruned lazily as they are encountered.
func (s *Store) List(ctx context.Context, limit int) ([]call.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("listing call records: %w", err)
	}

	records := make([]call.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Load(ctx, id)
		if err == call.ErrNotFound {
			s.client.ZRem(ctx, s.indexKey(), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
