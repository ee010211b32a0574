package handler

import (
	"context"
	"io"

	"github.com/Astemirdum/librarian/librarian/internal/controller"
	"github.com/Astemirdum/librarian/librarian/internal/dump"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/tables"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type Librarian interface {
	IssueBook(ctx context.Context, ui controller.Interaction, bookID int64, phone string) (model.Loan, error)
	ReturnBook(ctx context.Context, ui controller.Interaction, loanID int64) error
	WriteOff(ctx context.Context, ui controller.Interaction, loanID int64) error
	DeleteBook(ctx context.Context, ui controller.Interaction, bookID int64) error
	SaveBook(ctx context.Context, ui controller.Interaction, form model.BookForm) (model.Book, error)
	SaveReader(ctx context.Context, ui controller.Interaction, form model.ReaderForm) (model.Reader, error)
	DeleteReader(ctx context.Context, ui controller.Interaction, readerID int64) error
	Export(ctx context.Context, withHistory bool) (dump.File, error)
	Import(ctx context.Context, ui controller.Interaction, f dump.File) (dump.Stats, error)
	Report(ctx context.Context, w io.Writer) error
}

type Registry interface {
	Lookup(kind model.Kind) (tables.Viewer, bool)
	Refresh(ctx context.Context, kinds ...model.Kind) error
}

var (
	_ Librarian = (*controller.Controller)(nil)
	_ Registry  = (*tables.Registry)(nil)
)
