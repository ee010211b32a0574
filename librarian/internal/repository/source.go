package repository

import (
	"context"
	"fmt"

	"github.com/Astemirdum/librarian/librarian/internal/model"
)

// Source loads table rows, one read unit of work per call.
type Source struct {
	store Store
}

func NewSource(store Store) *Source {
	return &Source{store: store}
}

func (s *Source) Load(ctx context.Context, kind model.Kind, opts model.ListOptions) ([]model.Row, error) {
	return Do(ctx, s.store, func(ctx context.Context, tx Tx) ([]model.Row, error) {
		switch kind {
		case model.KindBook:
			items, err := tx.ListBooks(ctx, opts)
			return toRows(items), err
		case model.KindReader:
			items, err := tx.ListReaders(ctx, opts)
			return toRows(items), err
		case model.KindLoan:
			items, err := tx.ListLoans(ctx, opts)
			return toRows(items), err
		case model.KindHistory:
			items, err := tx.ListHistory(ctx, opts)
			return toRows(items), err
		}
		return nil, fmt.Errorf("unknown kind %v", kind)
	})
}

func toRows[T model.Row](items []T) []model.Row {
	rows := make([]model.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, it)
	}
	return rows
}
