package study

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/notation"
)

// entry guards one study.
type entry struct {
	mu    sync.Mutex
	study *Study
}

// Registry owns the open studies of a process. Each study is used by one
// caller at a time through With.
type Registry struct {
	mu      sync.RWMutex
	studies map[string]*entry

	store Store
	log   *zap.SugaredLogger
	opts  []notation.Option
	now   func() time.Time
}

// NewRegistry creates a registry persisting snapshots to store. opts are
// applied whenever a study is linearized.
func NewRegistry(store Store, log *zap.SugaredLogger, opts ...notation.Option) *Registry {
	return &Registry{
		studies: make(map[string]*entry),
		store:   store,
		log:     log,
		opts:    opts,
		now:     time.Now,
	}
}

// Create opens a new empty study with a fresh id.
func (r *Registry) Create(startFEN string) (string, error) {
	id := uuid.New().String()
	s, err := New(id, startFEN, r.opts...)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.studies[id] = &entry{study: s}
	r.mu.Unlock()

	r.log.Infow("study created", "id", id, "start", s.StartFEN)
	return id, nil
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.studies[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrStudyNotFound, "study %s", id)
	}
	return e, nil
}

// With runs fn with exclusive access to the study.
func (r *Registry) With(id string, fn func(*Study) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.study)
}

// Get returns a view of the study at its cursor.
func (r *Registry) Get(id string) (*View, error) {
	var view *View
	err := r.With(id, func(s *Study) error {
		var err error
		view, err = s.View()
		return err
	})
	return view, err
}

// Delete closes the study and removes its snapshot.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	_, ok := r.studies[id]
	delete(r.studies, id)
	r.mu.Unlock()

	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrStudyNotFound, "study %s", id)
	}
	r.log.Infow("study deleted", "id", id)
	return nil
}

// IDs lists the open studies in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.studies))
	for id := range r.studies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot saves the study's text and cursor to the store.
func (r *Registry) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := r.With(id, func(s *Study) error {
		path, ply := s.Where()
		snap = Snapshot{
			ID:       s.ID,
			StartFEN: s.StartFEN,
			MoveText: notation.Linearize(s.Tree()),
			Path:     path.String(),
			Ply:      ply,
			SavedAt:  r.now().UTC(),
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	if err := r.store.Save(ctx, snap); err != nil {
		r.log.Errorw("snapshot failed", "id", id, "error", err)
		return Snapshot{}, err
	}
	r.log.Debugw("study saved", "id", id, "bytes", len(snap.MoveText))
	return snap, nil
}

// Restore loads a snapshot and opens (or replaces) the study under its id.
// A cursor that no longer resolves falls back to the start.
func (r *Registry) Restore(ctx context.Context, id string) error {
	snap, err := r.store.Load(ctx, id)
	if err != nil {
		return err
	}

	s, err := New(snap.ID, snap.StartFEN, r.opts...)
	if err != nil {
		return err
	}
	if err := s.Import(snap.MoveText); err != nil {
		return errors.Wrapf(err, "restoring study %s", id)
	}
	if path, perr := movetree.ParsePath(snap.Path); perr == nil {
		if gerr := s.Goto(path, snap.Ply); gerr != nil {
			r.log.Warnw("restored cursor reset to start", "id", id, "path", snap.Path, "ply", snap.Ply)
		}
	}

	r.mu.Lock()
	e, ok := r.studies[id]
	if !ok {
		r.studies[id] = &entry{study: s}
	}
	r.mu.Unlock()
	if ok {
		e.mu.Lock()
		e.study = s
		e.mu.Unlock()
	}

	r.log.Infow("study restored", "id", id, "savedAt", snap.SavedAt)
	return nil
}
