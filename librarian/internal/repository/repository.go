package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

// Store opens units of work. fn runs inside one transaction which is committed
// when fn returns nil and rolled back otherwise.
type Store interface {
	WithUnitOfWork(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the set of queries available inside a unit of work.
type Tx interface {
	ListBooks(ctx context.Context, opts model.ListOptions) ([]model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	// LockBook takes a row lock on the book until the unit of work ends.
	LockBook(ctx context.Context, id int64) (model.Book, error)
	GetBookByCode(ctx context.Context, code string) (model.Book, error)
	InsertBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpsertBook(ctx context.Context, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) (model.Book, error)
	// OverdrawnBooks lists books whose count is below the number of loans.
	OverdrawnBooks(ctx context.Context) ([]model.Book, error)

	ListReaders(ctx context.Context, opts model.ListOptions) ([]model.Reader, error)
	GetReader(ctx context.Context, id int64) (model.Reader, error)
	LockReader(ctx context.Context, id int64) (model.Reader, error)
	GetReaderByPhone(ctx context.Context, phone string) (model.Reader, error)
	InsertReader(ctx context.Context, reader model.Reader) (model.Reader, error)
	UpdateReader(ctx context.Context, reader model.Reader) (model.Reader, error)
	UpsertReader(ctx context.Context, reader model.Reader) (model.Reader, error)
	DeleteReader(ctx context.Context, id int64) (model.Reader, error)
	CountReaders(ctx context.Context) (int, error)

	ListLoans(ctx context.Context, opts model.ListOptions) ([]model.Loan, error)
	GetLoan(ctx context.Context, id int64) (model.Loan, error)
	// CreateLoan uses the current time when issueDate is zero.
	CreateLoan(ctx context.Context, bookID, readerID int64, issueDate time.Time) (model.Loan, error)
	DeleteLoan(ctx context.Context, id int64) error
	DeleteLoansByReader(ctx context.Context, readerID int64) (int, error)

	ListHistory(ctx context.Context, opts model.ListOptions) ([]model.HistoryEvent, error)
	AppendHistory(ctx context.Context, event model.HistoryEvent) (model.HistoryEvent, error)
	CountHistorySince(ctx context.Context, eventType model.EventType, since time.Time) (int, error)
}

// Do runs fn in a unit of work and returns its value.
func Do[T any](ctx context.Context, s Store, fn func(ctx context.Context, tx Tx) (T, error)) (T, error) {
	var res T
	err := s.WithUnitOfWork(ctx, func(ctx context.Context, tx Tx) error {
		v, err := fn(ctx, tx)
		if err != nil {
			return err
		}
		res = v
		return nil
	})
	return res, err
}
