package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/Astemirdum/librarian/librarian/internal/dump"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/report"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
)

// Export reads the whole library in one unit of work.
func (c *Controller) Export(ctx context.Context, withHistory bool) (dump.File, error) {
	return repository.Do(ctx, c.store, func(ctx context.Context, tx repository.Tx) (dump.File, error) {
		return dump.Export(ctx, tx, withHistory)
	})
}

// Import loads a dump. Listed readers get exactly the loans of the dump.
func (c *Controller) Import(ctx context.Context, ui Interaction, f dump.File) (dump.Stats, error) {
	var st dump.Stats
	err := c.run(ctx, ui, action{
		name:     "Import",
		validate: f.Validate,
		prompt: func() string {
			return fmt.Sprintf("Import %d books and %d readers? Loans of the listed readers will be replaced.",
				len(f.Books), len(f.Readers))
		},
		mutate: func(ctx context.Context, tx repository.Tx) (_ *model.HistoryEvent, err error) {
			st, err = dump.Import(ctx, tx, f)
			return nil, err
		},
		touches: model.AllKinds,
		done:    func() string { return "imported " + st.String() },
	})
	return st, err
}

// Report writes the PDF month report to w.
func (c *Controller) Report(ctx context.Context, w io.Writer) error {
	data, err := repository.Do(ctx, c.store, func(ctx context.Context, tx repository.Tx) (report.Data, error) {
		return report.Collect(ctx, tx, c.now(), c.window)
	})
	if err != nil {
		return err
	}
	return report.Render(w, data)
}
