package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"exodus/internal/modules/progress/domain"
	progressout "exodus/internal/modules/progress/port/out"
	"exodus/internal/platform/clock"
	apperrors "exodus/internal/platform/errors"
	"exodus/internal/platform/id"
	"exodus/internal/platform/tx"
)

// MarkResult describes one applied mutation. PersistErr is set when the
// snapshot could not be written; the in-memory store keeps the change anyway.
type MarkResult struct {
	Date            time.Time
	DisciplineID    string
	Status          domain.Status
	Previous        domain.Status
	HadPrevious     bool
	FirstCompletion bool
	PersistErr      error
}

// ProgressService owns the in-memory store for the session and writes it
// through to the key-value store after every mutation.
type ProgressService struct {
	clock     clock.Clock
	idGen     id.Generator
	kv        progressout.KeyValueStore
	history   progressout.HistoryProjector
	tx        tx.Manager
	logger    *slog.Logger
	notifiers []progressout.CompletionNotifier

	// writeMu orders mutations with their snapshot writes.
	writeMu sync.Mutex
	mu      sync.RWMutex
	store   domain.Store
}

func NewProgressService(
	clk clock.Clock,
	idGen id.Generator,
	kv progressout.KeyValueStore,
	history progressout.HistoryProjector,
	txm tx.Manager,
	logger *slog.Logger,
	notifiers ...progressout.CompletionNotifier,
) *ProgressService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{
		clock:     clk,
		idGen:     idGen,
		kv:        kv,
		history:   history,
		tx:        txm,
		logger:    logger,
		notifiers: notifiers,
		store:     domain.NewStore(),
	}
}

// Load replaces the in-memory store with the persisted snapshot. Missing or
// unreadable state degrades to an empty store.
func (s *ProgressService) Load(ctx context.Context) domain.Store {
	loaded := s.read(ctx)
	s.mu.Lock()
	s.store = loaded
	s.mu.Unlock()
	return loaded
}

func (s *ProgressService) read(ctx context.Context) domain.Store {
	raw, ok, err := s.kv.Get(ctx, domain.StateKey)
	if err != nil {
		s.logger.Warn("progress state unreadable, starting empty", "error", err)
		return domain.NewStore()
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.NewStore()
	}
	store, err := domain.Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("progress state corrupt, starting empty", "error", err)
		return domain.NewStore()
	}
	s.logger.Debug("progress state loaded", "days", len(store), "cells", store.Cells())
	return store
}

func (s *ProgressService) StatusOf(date time.Time, disciplineID string) (domain.Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.StatusOf(date, disciplineID)
}

func (s *ProgressService) Snapshot() domain.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Mark sets one cell. Only invalid input is returned as an error; persistence
// problems are reported through MarkResult.PersistErr.
func (s *ProgressService) Mark(ctx context.Context, date time.Time, disciplineID string, status domain.Status) (MarkResult, error) {
	if strings.TrimSpace(disciplineID) == "" {
		return MarkResult{}, fmt.Errorf("%w: discipline id is required", apperrors.ErrInvalidInput)
	}
	if err := status.Validate(); err != nil {
		return MarkResult{}, err
	}
	date = clock.Date(date)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	update := domain.SetStatus(s.store, date, disciplineID, status)
	s.store = update.Store
	snapshot := update.Store
	s.mu.Unlock()

	result := MarkResult{
		Date:            date,
		DisciplineID:    disciplineID,
		Status:          status,
		Previous:        update.Previous,
		HadPrevious:     update.HadPrevious,
		FirstCompletion: update.Event != nil,
	}

	result.PersistErr = s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.save(ctx, snapshot); err != nil {
			return err
		}
		s.record(ctx, update, date, disciplineID, status)
		return nil
	})
	if result.PersistErr != nil {
		s.logger.Error("progress not persisted", "date", clock.DateKey(date), "discipline", disciplineID, "error", result.PersistErr)
	}

	if update.Event != nil {
		for _, n := range s.notifiers {
			n.NotifyFirstCompletion(ctx, *update.Event)
		}
	}
	return result, nil
}

// save writes the full snapshot, replacing whatever was stored before.
func (s *ProgressService) save(ctx context.Context, store domain.Store) error {
	payload, err := store.Encode()
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, domain.StateKey, string(payload)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *ProgressService) record(ctx context.Context, update domain.Update, date time.Time, disciplineID string, status domain.Status) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ID:           s.idGen.New(),
		Date:         clock.DateKey(date),
		DisciplineID: disciplineID,
		Status:       status,
		Previous:     update.Previous,
		RecordedAt:   s.clock.Now().UTC(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Warn("history projection failed", "error", err)
	}
}

func (s *ProgressService) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.history == nil {
		return nil, errors.New("history projector is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.history.Recent(ctx, limit)
}

// Restore replaces the in-memory store with the history projection's cells
// and writes it back through the key-value store. It recovers progress after
// the snapshot file was lost or found corrupt at load.
func (s *ProgressService) Restore(ctx context.Context) (domain.Store, error) {
	if s.history == nil {
		return nil, errors.New("history projector is not configured")
	}
	cells, err := s.history.Cells(ctx)
	if err != nil {
		return nil, fmt.Errorf("read history cells: %w", err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	s.store = cells
	s.mu.Unlock()
	if err := s.tx.Within(ctx, func(ctx context.Context) error {
		return s.save(ctx, cells)
	}); err != nil {
		return cells, err
	}
	s.logger.Info("progress restored from history", "days", len(cells), "cells", cells.Cells())
	return cells, nil
}

// Reindex rebuilds the history projection's cell table from the snapshot.
func (s *ProgressService) Reindex(ctx context.Context) error {
	if s.history == nil {
		return errors.New("history projector is not configured")
	}
	return s.history.Rebuild(ctx, s.Snapshot())
}
