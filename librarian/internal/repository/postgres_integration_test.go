//go:build integration

package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/dump"
	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
	"github.com/Astemirdum/librarian/librarian/migrations"
	"github.com/Astemirdum/librarian/pkg/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) repository.Store {
	dsn := os.Getenv("LIBRARIAN_TEST_DSN")
	if dsn == "" {
		t.Skip("LIBRARIAN_TEST_DSN is not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(pool, migrations.MigrationFiles))

	_, err = pool.Exec(ctx, "truncate history, book_to_reader, readers, books restart identity cascade")
	require.NoError(t, err)
	return repository.NewStore(pool, zap.NewNop())
}

func seed(t *testing.T, s repository.Store, count int) (model.Book, model.Reader) {
	var (
		book   model.Book
		reader model.Reader
	)
	err := s.WithUnitOfWork(context.Background(), func(ctx context.Context, tx repository.Tx) (err error) {
		if book, err = tx.InsertBook(ctx, model.Book{Code: "B1", Name: "Dune", Author: "Herbert", Count: count}); err != nil {
			return err
		}
		reader, err = tx.InsertReader(ctx, model.Reader{Firstname: "Ivan", Lastname: "Petrov", Phone: "+71234567890"})
		return err
	})
	require.NoError(t, err)
	return book, reader
}

// These tests share one database and must not run in parallel.

func TestStore_AvailableCount(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	book, reader := seed(t, s, 2)

	for i := 0; i < 2; i++ {
		_, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (model.Loan, error) {
			return tx.CreateLoan(ctx, book.ID, reader.ID, time.Time{})
		})
		require.NoError(t, err)
	}
	got, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (model.Book, error) {
		return tx.GetBook(ctx, book.ID)
	})
	require.NoError(t, err)
	require.Equal(t, 2, got.TakenCount)
	require.Zero(t, got.AvailableCount())
}

func TestStore_DeleteReaderWithLoans(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	book, reader := seed(t, s, 1)

	_, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (model.Loan, error) {
		return tx.CreateLoan(ctx, book.ID, reader.ID, time.Time{})
	})
	require.NoError(t, err)

	_, err = repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (model.Reader, error) {
		return tx.DeleteReader(ctx, reader.ID)
	})
	require.ErrorIs(t, err, errs.ErrPrecondition)

	loans, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) ([]model.Loan, error) {
		return tx.ListLoans(ctx, model.ListOptions{Where: model.LoansOfReader(reader.ID)})
	})
	require.NoError(t, err)
	require.Len(t, loans, 1)
}

func TestStore_DeleteBookCascades(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	book, reader := seed(t, s, 1)

	err := s.WithUnitOfWork(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := tx.CreateLoan(ctx, book.ID, reader.ID, time.Time{}); err != nil {
			return err
		}
		_, err := tx.DeleteBook(ctx, book.ID)
		return err
	})
	require.NoError(t, err)

	loans, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) ([]model.Loan, error) {
		return tx.ListLoans(ctx, model.ListOptions{})
	})
	require.NoError(t, err)
	require.Empty(t, loans)
}

func TestStore_Conflict(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seed(t, s, 1)

	_, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (model.Reader, error) {
		return tx.InsertReader(ctx, model.Reader{Firstname: "Olga", Lastname: "Sidorova", Phone: "+71234567890"})
	})
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Equal(t, "this phone number is already registered", errs.Message(err))
}

func TestStore_RollbackOnError(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	err := s.WithUnitOfWork(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := tx.InsertBook(ctx, model.Book{Code: "B7", Name: "Solaris", Author: "Lem", Count: 1}); err != nil {
			return err
		}
		return errs.Precondition("stop")
	})
	require.ErrorIs(t, err, errs.ErrPrecondition)

	_, err = repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (model.Book, error) {
		return tx.GetBookByCode(ctx, "B7")
	})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStore_SearchAndSort(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seed(t, s, 3)

	books, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) ([]model.Book, error) {
		sort := model.Books.(model.Sortable).SortFields()[model.ColAvailable]
		return tx.ListBooks(ctx, model.ListOptions{Where: model.Books.Search("dun"), OrderBy: sort + " desc"})
	})
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "B1", books[0].Code)
}

func TestDump_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	book, reader := seed(t, s, 2)
	issued := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	_, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (model.Loan, error) {
		return tx.CreateLoan(ctx, book.ID, reader.ID, issued)
	})
	require.NoError(t, err)

	exported, err := repository.Do(ctx, s, func(ctx context.Context, tx repository.Tx) (dump.File, error) {
		return dump.Export(ctx, tx, false)
	})
	require.NoError(t, err)

	empty := newStore(t)
	_, err = repository.Do(ctx, empty, func(ctx context.Context, tx repository.Tx) (dump.Stats, error) {
		return dump.Import(ctx, tx, exported)
	})
	require.NoError(t, err)

	reimported, err := repository.Do(ctx, empty, func(ctx context.Context, tx repository.Tx) (dump.File, error) {
		return dump.Export(ctx, tx, false)
	})
	require.NoError(t, err)
	require.Equal(t, exported, reimported)
	require.Equal(t, issued, reimported.Readers[0].Books[0].IssueDate)
}
