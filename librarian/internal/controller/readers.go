package controller

import (
	"context"
	"fmt"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
	"github.com/Astemirdum/librarian/librarian/internal/validation"
)

var touchReader = []model.Kind{model.KindReader, model.KindLoan, model.KindHistory}

// SaveReader creates the reader when form.ID is zero and edits it otherwise.
func (c *Controller) SaveReader(ctx context.Context, ui Interaction, form model.ReaderForm) (model.Reader, error) {
	var saved model.Reader
	create := form.ID == 0
	err := c.run(ctx, ui, action{
		name: "Save reader",
		validate: func() error {
			if err := validation.ValidatePhoneNumber(form.Phone); err != nil {
				return err
			}
			return c.validateForm(form)
		},
		mutate: func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			r := model.Reader{ID: form.ID, Firstname: form.Firstname, Lastname: form.Lastname, Phone: form.Phone}
			var (
				err error
				ev  model.HistoryEvent
			)
			if create {
				if saved, err = tx.InsertReader(ctx, r); err != nil {
					return nil, err
				}
				ev = model.NewEvent(model.EventNewReader, readerComment(saved))
				return &ev, nil
			}
			if _, err = tx.LockReader(ctx, form.ID); err != nil {
				return nil, err
			}
			if saved, err = tx.UpdateReader(ctx, r); err != nil {
				return nil, err
			}
			ev = model.NewEvent(model.EventReaderChanged, readerComment(saved))
			return &ev, nil
		},
		touches: touchReader,
		done:    func() string { return fmt.Sprintf("%s %s saved", saved.Firstname, saved.Lastname) },
	})
	return saved, err
}

// DeleteReader removes a reader who holds no books.
func (c *Controller) DeleteReader(ctx context.Context, ui Interaction, readerID int64) error {
	var reader model.Reader
	return c.run(ctx, ui, action{
		name: "Delete reader",
		check: func(ctx context.Context, tx repository.Tx) (err error) {
			if reader, err = tx.GetReader(ctx, readerID); err != nil {
				return err
			}
			return checkNoLoans(reader)
		},
		prompt: func() string {
			return fmt.Sprintf("Delete reader %s %s (%s)?", reader.Firstname, reader.Lastname, reader.Phone)
		},
		mutate: func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error) {
			reader, err := tx.LockReader(ctx, readerID)
			if err != nil {
				return nil, err
			}
			if err := checkNoLoans(reader); err != nil {
				return nil, err
			}
			if _, err := tx.DeleteReader(ctx, readerID); err != nil {
				return nil, err
			}
			ev := model.NewEvent(model.EventReaderLeft, readerComment(reader))
			return &ev, nil
		},
		touches: []model.Kind{model.KindReader, model.KindHistory},
		done:    func() string { return fmt.Sprintf("%s %s deleted", reader.Firstname, reader.Lastname) },
	})
}

func checkNoLoans(r model.Reader) error {
	if r.BooksTaken > 0 {
		return errs.Precondition("%s %s still holds %d book(s); return them first", r.Firstname, r.Lastname, r.BooksTaken)
	}
	return nil
}

func readerComment(r model.Reader) string {
	return fmt.Sprintf("%s %s %s", r.Firstname, r.Lastname, r.Phone)
}
