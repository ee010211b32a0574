package tables

import (
	"context"
	"sync"

	"github.com/Astemirdum/librarian/librarian/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Registry maps an entity kind to its active view. Ad-hoc views are not registered.
type Registry struct {
	mu    sync.RWMutex
	views map[model.Kind]Viewer
	log   *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		views: make(map[model.Kind]Viewer),
		log:   log.Named("tables"),
	}
}

// Register records the view for kind, replacing the previous one.
func (r *Registry) Register(kind model.Kind, v Viewer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[kind] = v
}

func (r *Registry) Lookup(kind model.Kind) (Viewer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[kind]
	return v, ok
}

// Refresh re-renders the registered views of the given kinds, or every view
// when no kind is given. Unregistered kinds are skipped.
func (r *Registry) Refresh(ctx context.Context, kinds ...model.Kind) error {
	targets := r.resolve(kinds)
	if len(targets) == 0 {
		return nil
	}

	var g errgroup.Group
	for kind, v := range targets {
		kind, v := kind, v
		g.Go(func() error {
			if err := v.Refresh(ctx); err != nil {
				r.log.Warn("refresh failed", zap.Stringer("kind", kind), zap.Error(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Registry) resolve(kinds []model.Kind) map[model.Kind]Viewer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make(map[model.Kind]Viewer, len(r.views))
	if len(kinds) == 0 {
		for k, v := range r.views {
			targets[k] = v
		}
		return targets
	}
	for _, k := range kinds {
		if v, ok := r.views[k]; ok {
			targets[k] = v
		}
	}
	return targets
}
