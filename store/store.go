package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ezraisw/konvert"
	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/logger"
)

const DefaultKeyPrefix = "konvert###transactions"

var (
	ErrInvalidTransaction = errors.New("store: invalid transaction")
	ErrNotFound           = fmt.Errorf("store: transaction not found: %w", adapter.ErrNotFound)
)

type (
	// Store persists transactions as archives in an adapter.
	// The id index is a separate archived list guarded by the adapter lock.
	Store struct {
		adapter   adapter.Adapter
		converter *konvert.Converter
		logger    logger.Logger
		prefix    string
	}

	Option func(*Store)
)

func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

func New(a adapter.Adapter, conv *konvert.Converter, opts ...Option) *Store {
	s := &Store{
		adapter:   a,
		converter: conv,
		logger:    logger.Nop(),
		prefix:    DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(id string) string {
	return s.prefix + "###" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "###index"
}

func (s *Store) lockKey() string {
	return "lock###" + s.prefix
}

// Save stores tx under its transaction identifier, replacing any previous version.
func (s *Store) Save(ctx context.Context, tx *Transaction) error {
	if tx == nil || tx.TransactionIdentifier == "" {
		return ErrInvalidTransaction
	}

	data, err := s.converter.TryEncodeArchive(tx)
	if err != nil {
		return err
	}

	return s.withLock(ctx, func() error {
		ids, err := s.loadIndex(ctx)
		if err != nil {
			return err
		}

		if err := s.adapter.Set(ctx, s.key(tx.TransactionIdentifier), 0, data); err != nil {
			return err
		}

		if contains(ids, tx.TransactionIdentifier) {
			return nil
		}
		return s.storeIndex(ctx, append(ids, tx.TransactionIdentifier))
	})
}

func (s *Store) Contains(ctx context.Context, id string) (bool, error) {
	return s.adapter.Exists(ctx, s.key(id))
}

func (s *Store) Load(ctx context.Context, id string) (*Transaction, error) {
	data, err := s.adapter.Get(ctx, s.key(id))
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	v, err := s.converter.TryDecodeArchive(data)
	if err != nil {
		return nil, err
	}

	tx, ok := v.(*Transaction)
	if !ok {
		return nil, fmt.Errorf("store: %s holds %T, not a transaction", id, v)
	}
	return tx, nil
}

// LoadAll returns transactions in save order. Index entries without data are skipped.
func (s *Store) LoadAll(ctx context.Context) ([]*Transaction, error) {
	ids, err := s.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	txs := make([]*Transaction, 0, len(ids))
	for _, id := range ids {
		tx, err := s.Load(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.logger.Debug("index entry without data", id)
				continue
			}
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	return s.withLock(ctx, func() error {
		ids, err := s.loadIndex(ctx)
		if err != nil {
			return err
		}

		if err := s.adapter.Delete(ctx, s.key(id)); err != nil {
			return err
		}

		remaining := ids[:0]
		for _, existing := range ids {
			if existing != id {
				remaining = append(remaining, existing)
			}
		}
		return s.storeIndex(ctx, remaining)
	})
}

func (s *Store) RemoveAll(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		ids, err := s.loadIndex(ctx)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if err := s.adapter.Delete(ctx, s.key(id)); err != nil {
				return err
			}
		}
		return s.adapter.Delete(ctx, s.indexKey())
	})
}

// ExportJSON writes every stored transaction as a JSON array.
func (s *Store) ExportJSON(ctx context.Context, opts konvert.JSONWriteOptions) ([]byte, error) {
	txs, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	objects := make([]any, len(txs))
	for i, tx := range txs {
		objects[i] = tx.JSONObject()
	}
	return s.converter.TryEncodeJSONBytes(objects, opts)
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	lock, err := s.adapter.ObtainLock(ctx, s.lockKey())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			s.logger.Error("store: release lock", s.lockKey(), err)
		}
	}()

	return fn()
}

func (s *Store) loadIndex(ctx context.Context) ([]string, error) {
	data, err := s.adapter.Get(ctx, s.indexKey())
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	v, err := s.converter.TryDecodeArchive(data)
	if err != nil {
		return nil, err
	}

	list, ok := v.(konvert.List)
	if !ok {
		return nil, fmt.Errorf("store: index holds %T, not a list", v)
	}

	ids := make([]string, 0, len(list))
	for _, item := range list {
		id, ok := item.(konvert.String)
		if !ok {
			return nil, fmt.Errorf("store: index entry is %s, not a string", item.Kind())
		}
		ids = append(ids, string(id))
	}
	return ids, nil
}

func (s *Store) storeIndex(ctx context.Context, ids []string) error {
	list := make(konvert.List, len(ids))
	for i, id := range ids {
		list[i] = konvert.String(id)
	}

	data, err := s.converter.TryEncodeArchive(list)
	if err != nil {
		return err
	}
	return s.adapter.Set(ctx, s.indexKey(), 0, data)
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
