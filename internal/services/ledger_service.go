// Package services ties the in-memory ledger to its persistence backend and
// the optional change notifications.
package services

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// EventPublisher receives an event after every successful change.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event *amqp.TransactionEvent) error
	Close() error
}

// LedgerService orchestrates store mutations, persistence and notifications.
type LedgerService struct {
	store     *ledger.Store
	backend   storage.Backend
	publisher EventPublisher
	logger    *log.Logger
}

// NewLedgerService builds the service. publisher may be nil.
func NewLedgerService(store *ledger.Store, backend storage.Backend, publisher EventPublisher, logger *log.Logger) *LedgerService {
	if store == nil {
		store = ledger.New()
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &LedgerService{
		store:     store,
		backend:   backend,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// Store exposes the store for queries. Mutations should go through the
// service so they are announced.
func (s *LedgerService) Store() *ledger.Store { return s.store }

// Load replaces the store contents with the persisted ledger.
func (s *LedgerService) Load(ctx context.Context) (int, error) {
	txs, err := s.backend.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load ledger: %w", err)
	}
	s.store.Replace(txs)
	s.logger.InfoContext(ctx, "Ledger loaded",
		log.NewFields().WithOperation(log.OpLoad).WithCount(len(txs)).ToSlice()...)
	return len(txs), nil
}

// Save persists the whole store.
func (s *LedgerService) Save(ctx context.Context) error {
	txs := s.store.All()
	if err := s.backend.Save(ctx, txs); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	s.logger.InfoContext(ctx, "Ledger saved",
		log.NewFields().WithOperation(log.OpSave).WithCount(len(txs)).ToSlice()...)
	s.publish(ctx, amqp.NewCountEvent(amqp.ActionSaved, len(txs)))
	return nil
}

func (s *LedgerService) Add(ctx context.Context, e ledger.Entry) (core.Transaction, error) {
	tx, err := s.store.Add(e)
	if err != nil {
		return core.Transaction{}, err
	}
	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().WithOperation(log.OpAdd).WithTransaction(tx).ToSlice()...)
	s.publish(ctx, amqp.NewTransactionEvent(amqp.ActionAdded, tx))
	return tx, nil
}

func (s *LedgerService) Edit(ctx context.Context, id string, in ledger.EditInput) (core.Transaction, error) {
	tx, err := s.store.Edit(id, in)
	if err != nil {
		return core.Transaction{}, err
	}
	s.logger.InfoContext(ctx, "Transaction edited",
		log.NewFields().WithOperation(log.OpEdit).WithTransaction(tx).ToSlice()...)
	s.publish(ctx, amqp.NewTransactionEvent(amqp.ActionEdited, tx))
	return tx, nil
}

func (s *LedgerService) Delete(ctx context.Context, id string) (core.Transaction, error) {
	tx, err := s.store.Delete(id)
	if err != nil {
		return core.Transaction{}, err
	}
	s.logger.InfoContext(ctx, "Transaction deleted",
		log.NewFields().WithOperation(log.OpDelete).WithTransaction(tx).ToSlice()...)
	s.publish(ctx, amqp.NewTransactionEvent(amqp.ActionDeleted, tx))
	return tx, nil
}

// Clear empties the store and returns how many transactions were dropped.
func (s *LedgerService) Clear(ctx context.Context) int {
	n := s.store.Clear()
	s.logger.InfoContext(ctx, "Ledger cleared",
		log.NewFields().WithOperation(log.OpClear).WithCount(n).ToSlice()...)
	s.publish(ctx, amqp.NewCountEvent(amqp.ActionCleared, n))
	return n
}

// publish never fails the caller: the change is already applied locally.
func (s *LedgerService) publish(ctx context.Context, event *amqp.TransactionEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger event",
			log.NewFields().WithOperation(log.OpPublish).WithError(err).ToSlice()...)
	}
}

// Close releases the backend and the publisher.
func (s *LedgerService) Close() error {
	var result *multierror.Error
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close backend: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close publisher: %w", err))
		}
	}
	return result.ErrorOrNil()
}
