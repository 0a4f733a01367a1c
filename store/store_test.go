package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/ezraisw/konvert"
	"github.com/ezraisw/konvert/adapter"
	"github.com/ezraisw/konvert/adapter/gcache"
	"github.com/ezraisw/konvert/adapter/memory"
	"github.com/ezraisw/konvert/logger"
	"github.com/ezraisw/konvert/store"
	"github.com/stretchr/testify/suite"
)

var (
	now = time.Date(2020, 10, 6, 8, 59, 39, 120, time.UTC)

	purchased = &store.Transaction{
		State:                 store.StatePurchased,
		ProductIdentifier:     "com.example.coins.100",
		UserIdentifier:        "user-1",
		TransactionIdentifier: "1000000001",
		TransactionTimestamp:  now,
		TransactionReceipt:    []byte("receipt-1"),
	}

	restored = &store.Transaction{
		State:                         store.StateRestored,
		ProductIdentifier:             "com.example.premium",
		UserIdentifier:                "user-2",
		TransactionIdentifier:         "1000000002",
		OriginalTransactionIdentifier: "1000000000",
		TransactionTimestamp:          now.Add(time.Hour),
		OriginalTransactionTimestamp:  now.AddDate(0, -1, 0),
		TransactionReceipt:            []byte("receipt-2"),
	}
)

type StoreTestSuite struct {
	suite.Suite
	newAdapter func() adapter.Adapter
	ctx        context.Context
	adapter    adapter.Adapter
	store      *store.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.adapter = s.newAdapter()
	s.store = store.New(s.adapter, konvert.New(konvert.WithLogger(logger.Nop())))
}

func (s *StoreTestSuite) TestSaveLoad() {
	s.Require().NoError(s.store.Save(s.ctx, purchased))

	tx, err := s.store.Load(s.ctx, purchased.TransactionIdentifier)
	s.Require().NoError(err)
	s.Equal(purchased, tx)

	ok, err := s.store.Contains(s.ctx, purchased.TransactionIdentifier)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StoreTestSuite) TestSaveInvalid() {
	s.ErrorIs(s.store.Save(s.ctx, nil), store.ErrInvalidTransaction)
	s.ErrorIs(s.store.Save(s.ctx, &store.Transaction{}), store.ErrInvalidTransaction)
}

func (s *StoreTestSuite) TestLoadMissing() {
	_, err := s.store.Load(s.ctx, "missing")
	s.ErrorIs(err, store.ErrNotFound)
	s.ErrorIs(err, adapter.ErrNotFound)
}

func (s *StoreTestSuite) TestLoadAllKeepsOrderAndReplaces() {
	s.Require().NoError(s.store.Save(s.ctx, purchased))
	s.Require().NoError(s.store.Save(s.ctx, restored))

	updated := *purchased
	updated.State = store.StateFailed
	s.Require().NoError(s.store.Save(s.ctx, &updated))

	txs, err := s.store.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]*store.Transaction{&updated, restored}, txs)
}

func (s *StoreTestSuite) TestLoadAllSkipsMissingData() {
	s.Require().NoError(s.store.Save(s.ctx, purchased))
	s.Require().NoError(s.store.Save(s.ctx, restored))
	s.Require().NoError(s.adapter.Delete(s.ctx, store.DefaultKeyPrefix+"###"+purchased.TransactionIdentifier))

	txs, err := s.store.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]*store.Transaction{restored}, txs)
}

func (s *StoreTestSuite) TestRemove() {
	s.Require().NoError(s.store.Save(s.ctx, purchased))
	s.Require().NoError(s.store.Save(s.ctx, restored))
	s.Require().NoError(s.store.Remove(s.ctx, purchased.TransactionIdentifier))

	ok, err := s.store.Contains(s.ctx, purchased.TransactionIdentifier)
	s.Require().NoError(err)
	s.False(ok)

	txs, err := s.store.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]*store.Transaction{restored}, txs)
}

func (s *StoreTestSuite) TestRemoveAll() {
	s.Require().NoError(s.store.Save(s.ctx, purchased))
	s.Require().NoError(s.store.Save(s.ctx, restored))
	s.Require().NoError(s.store.RemoveAll(s.ctx))

	txs, err := s.store.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(txs)

	ok, err := s.store.Contains(s.ctx, restored.TransactionIdentifier)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreTestSuite) TestKeyPrefix() {
	other := store.New(s.adapter, konvert.New(konvert.WithLogger(logger.Nop())), store.WithKeyPrefix("other"))

	s.Require().NoError(s.store.Save(s.ctx, purchased))

	txs, err := other.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *StoreTestSuite) TestExportJSON() {
	s.Require().NoError(s.store.Save(s.ctx, purchased))

	data, err := s.store.ExportJSON(s.ctx, konvert.JSONWriteOptions{})
	s.Require().NoError(err)

	s.JSONEq(`[{
		"state": "purchased",
		"productIdentifier": "com.example.coins.100",
		"userIdentifier": "user-1",
		"transactionIdentifier": "1000000001",
		"originalTransactionIdentifier": "",
		"transactionTimestamp": "2020-10-06T08:59:39.00000012Z",
		"originalTransactionTimestamp": null,
		"transactionReceipt": "cmVjZWlwdC0x"
	}]`, string(data))
}

func (s *StoreTestSuite) TestExportJSONEmpty() {
	data, err := s.store.ExportJSON(s.ctx, konvert.JSONWriteOptions{})
	s.Require().NoError(err)
	s.Equal("[]", string(data))
}

func TestRunStoreTestSuite(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newAdapter: memory.NewAdapter})
}

func TestRunStoreTestSuiteGCache(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newAdapter: gcache.NewAdapter})
}
