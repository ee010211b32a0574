package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	sq "github.com/Masterminds/squirrel"
)

func loanSelect() sq.SelectBuilder {
	return qb.Select(
		"l.id", "l.book_id", "l.reader_id", "l.issue_date",
		"b.code as book_code", "b.name as book_name", "b.author as book_author",
		"r.phone as reader_phone", "r.firstname as reader_firstname", "r.lastname as reader_lastname",
	).
		From(loansTableName + " l").
		Join(booksTableName + " b on b.id = l.book_id").
		Join(readersTableName + " r on r.id = l.reader_id")
}

func (r *repository) ListLoans(ctx context.Context, opts model.ListOptions) ([]model.Loan, error) {
	q := where(loanSelect(), opts.Where)
	return collect[model.Loan](ctx, r, orderBy(q, opts.OrderBy, "l.issue_date desc, l.id desc"))
}

func (r *repository) GetLoan(ctx context.Context, id int64) (model.Loan, error) {
	return collectOne[model.Loan](ctx, r, loanSelect().Where(sq.Eq{"l.id": id}), "loan", id)
}

func (r *repository) CreateLoan(ctx context.Context, bookID, readerID int64, issueDate time.Time) (model.Loan, error) {
	ins := qb.Insert(loansTableName)
	if issueDate.IsZero() {
		ins = ins.Columns("book_id", "reader_id").Values(bookID, readerID)
	} else {
		ins = ins.Columns("book_id", "reader_id", "issue_date").Values(bookID, readerID, issueDate.UTC())
	}
	id, err := r.insertReturningID(ctx, ins)
	if err != nil {
		return model.Loan{}, err
	}
	return r.GetLoan(ctx, id)
}

func (r *repository) DeleteLoan(ctx context.Context, id int64) error {
	n, err := r.exec(ctx, qb.Delete(loansTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("loan %d not found", id)
	}
	return nil
}

func (r *repository) DeleteLoansByReader(ctx context.Context, readerID int64) (int, error) {
	n, err := r.exec(ctx, qb.Delete(loansTableName).Where(sq.Eq{"reader_id": readerID}))
	return int(n), err
}
