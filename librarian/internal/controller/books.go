package controller

import (
	"context"
	"fmt"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
	"github.com/Astemirdum/librarian/librarian/internal/validation"
	"github.com/pkg/errors"
)

var (
	touchIssue = []model.Kind{model.KindBook, model.KindReader, model.KindLoan, model.KindHistory}
	touchBook  = []model.Kind{model.KindBook, model.KindLoan, model.KindHistory}
)

// IssueBook lends one copy of the book to the reader with the given phone.
func (c *Controller) IssueBook(ctx context.Context, ui Interaction, bookID int64, phone string) (model.Loan, error) {
	var (
		book   model.Book
		reader model.Reader
		loan   model.Loan
	)
	err := c.run(ctx, ui, action{
		name:     "Issue book",
		validate: func() error { return validation.ValidatePhoneNumber(phone) },
		check: func(ctx context.Context, tx repository.Tx) (err error) {
			if book, err = tx.GetBook(ctx, bookID); err != nil {
				return err
			}
			if err = checkAvailable(book); err != nil {
				return err
			}
			reader, err = readerByPhone(ctx, tx, phone)
			return err
		},
		prompt: func() string {
			return fmt.Sprintf("Issue %q to %s %s (%s)?", book.Name, reader.Firstname, reader.Lastname, reader.Phone)
		},
		mutate: func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			book, err := tx.LockBook(ctx, bookID)
			if err != nil {
				return nil, err
			}
			if err := checkAvailable(book); err != nil {
				return nil, err
			}
			reader, err := readerByPhone(ctx, tx, phone)
			if err != nil {
				return nil, err
			}
			if loan, err = tx.CreateLoan(ctx, book.ID, reader.ID, c.now()); err != nil {
				return nil, err
			}
			ev := model.NewEvent(model.EventBookTaken, fmt.Sprintf("%s %q issued to %s", book.Code, book.Name, reader.Phone))
			return &ev, nil
		},
		touches: touchIssue,
		done: func() string {
			return fmt.Sprintf("%q issued to %s %s", book.Name, reader.Firstname, reader.Lastname)
		},
	})
	return loan, err
}

// ReturnBook closes the loan.
func (c *Controller) ReturnBook(ctx context.Context, ui Interaction, loanID int64) error {
	var loan model.Loan
	return c.run(ctx, ui, action{
		name: "Return book",
		check: func(ctx context.Context, tx repository.Tx) (err error) {
			loan, err = tx.GetLoan(ctx, loanID)
			return err
		},
		prompt: func() string {
			return fmt.Sprintf("Return %q from %s %s?", loan.BookName, loan.ReaderFirstname, loan.ReaderLastname)
		},
		mutate: func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			loan, err := tx.GetLoan(ctx, loanID)
			if err != nil {
				return nil, err
			}
			if err := tx.DeleteLoan(ctx, loan.ID); err != nil {
				return nil, err
			}
			ev := model.NewEvent(model.EventBookReturned, fmt.Sprintf("%s %q returned by %s", loan.BookCode, loan.BookName, loan.ReaderPhone))
			return &ev, nil
		},
		touches: touchIssue,
		done:    func() string { return fmt.Sprintf("%q returned", loan.BookName) },
	})
}

// WriteOff removes the copy held under the loan from circulation: the loan is
// deleted and the book count drops by one.
func (c *Controller) WriteOff(ctx context.Context, ui Interaction, loanID int64) error {
	var (
		loan model.Loan
		book model.Book
	)
	return c.run(ctx, ui, action{
		name: "Write off",
		check: func(ctx context.Context, tx repository.Tx) (err error) {
			if loan, err = tx.GetLoan(ctx, loanID); err != nil {
				return err
			}
			if book, err = tx.GetBook(ctx, loan.BookID); err != nil {
				return err
			}
			return checkWriteOff(book)
		},
		prompt: func() string {
			return fmt.Sprintf("Write off the copy of %q held by %s %s? %d copies will remain.",
				book.Name, loan.ReaderFirstname, loan.ReaderLastname, book.Count-1)
		},
		mutate: func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			loan, err := tx.GetLoan(ctx, loanID)
			if err != nil {
				return nil, err
			}
			book, err := tx.LockBook(ctx, loan.BookID)
			if err != nil {
				return nil, err
			}
			if err := checkWriteOff(book); err != nil {
				return nil, err
			}
			if err := tx.DeleteLoan(ctx, loan.ID); err != nil {
				return nil, err
			}
			book.Count--
			if _, err := tx.UpdateBook(ctx, book); err != nil {
				return nil, err
			}
			ev := model.NewEvent(model.EventBookWrittenOff,
				fmt.Sprintf("%s %q written off, held by %s, %d left", book.Code, book.Name, loan.ReaderPhone, book.Count))
			return &ev, nil
		},
		touches: model.AllKinds,
		done:    func() string { return fmt.Sprintf("one copy of %q written off", book.Name) },
	})
}

// DeleteBook removes the book together with its loans.
func (c *Controller) DeleteBook(ctx context.Context, ui Interaction, bookID int64) error {
	var book model.Book
	return c.run(ctx, ui, action{
		name: "Delete book",
		check: func(ctx context.Context, tx repository.Tx) (err error) {
			book, err = tx.GetBook(ctx, bookID)
			return err
		},
		prompt: func() string {
			if book.TakenCount > 0 {
				return fmt.Sprintf("Delete %q? %d issued copies will be dropped.", book.Name, book.TakenCount)
			}
			return fmt.Sprintf("Delete %q?", book.Name)
		},
		mutate: func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			if _, err := tx.LockBook(ctx, bookID); err != nil {
				return nil, err
			}
			deleted, err := tx.DeleteBook(ctx, bookID)
			if err != nil {
				return nil, err
			}
			ev := model.NewEvent(model.EventBookDeleted,
				fmt.Sprintf("%s %q deleted with %d issued copies", deleted.Code, deleted.Name, deleted.TakenCount))
			return &ev, nil
		},
		touches: touchIssue,
		done:    func() string { return fmt.Sprintf("%q deleted", book.Name) },
	})
}

// SaveBook creates the book when form.ID is zero and edits it otherwise.
func (c *Controller) SaveBook(ctx context.Context, ui Interaction, form model.BookForm) (model.Book, error) {
	var saved model.Book
	create := form.ID == 0
	a := action{
		name: "Save book",
		validate: func() error {
			if err := c.validateForm(form); err != nil {
				return err
			}
			if create {
				_, err := validation.ValidateBookCount(form.Count, 0)
				return err
			}
			return nil
		},
		touches: touchBook,
		done: func() string {
			if create {
				return fmt.Sprintf("%q added", saved.Name)
			}
			return fmt.Sprintf("%q saved", saved.Name)
		},
	}
	if create {
		a.mutate = func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			count, err := validation.ValidateBookCount(form.Count, 0)
			if err != nil {
				return nil, err
			}
			if saved, err = tx.InsertBook(ctx, bookFromForm(form, count)); err != nil {
				return nil, err
			}
			ev := model.NewEvent(model.EventBookAdded, fmt.Sprintf("%s %q, %d pcs.", saved.Code, saved.Name, saved.Count))
			return &ev, nil
		}
	} else {
		a.check = func(ctx context.Context, tx repository.Tx) error {
			current, err := tx.GetBook(ctx, form.ID)
			if err != nil {
				return err
			}
			_, err = validation.ValidateBookCount(form.Count, current.TakenCount)
			return err
		}
		a.mutate = func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			current, err := tx.LockBook(ctx, form.ID)
			if err != nil {
				return nil, err
			}
			count, err := validation.ValidateBookCount(form.Count, current.TakenCount)
			if err != nil {
				return nil, err
			}
			if saved, err = tx.UpdateBook(ctx, bookFromForm(form, count)); err != nil {
				return nil, err
			}
			ev := model.NewEvent(model.EventBookChanged, fmt.Sprintf("%s %q, %d pcs.", saved.Code, saved.Name, saved.Count))
			return &ev, nil
		}
	}
	err := c.run(ctx, ui, a)
	return saved, err
}

func bookFromForm(form model.BookForm, count int) model.Book {
	return model.Book{
		ID:     form.ID,
		Code:   form.Code,
		Name:   form.Name,
		Author: form.Author,
		Count:  count,
	}
}

func checkAvailable(b model.Book) error {
	if b.AvailableCount() <= 0 {
		return errs.Precondition("no copies of %q are available", b.Name)
	}
	return nil
}

func checkWriteOff(b model.Book) error {
	if b.Count <= 0 || b.TakenCount <= 0 {
		return errs.Precondition("%q has no copies to write off", b.Name)
	}
	return nil
}

func readerByPhone(ctx context.Context, tx repository.Tx, phone string) (model.Reader, error) {
	r, err := tx.GetReaderByPhone(ctx, phone)
	if errors.Is(err, errs.ErrNotFound) {
		return model.Reader{}, errs.Precondition("no reader with phone %s", phone)
	}
	return r, err
}
