package repository

import (
	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

var conflictMessages = map[string]string{
	"books_code_key":    "a book with this code already exists",
	"readers_phone_key": "this phone number is already registered",
}

var restrictMessages = map[string]string{
	"book_to_reader_reader_id_fkey": "the reader still holds books; return them first",
	"book_to_reader_book_id_fkey":   "the book no longer exists",
}

// translate maps store failures onto the error taxonomy. Errors that are already
// part of it pass through unchanged.
func translate(err error) error {
	if err == nil || errs.Translated(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			msg, ok := conflictMessages[pgErr.ConstraintName]
			if !ok {
				msg = "duplicate value: " + pgErr.Detail
			}
			return errs.Conflict(msg, err)
		case pgerrcode.ForeignKeyViolation:
			msg, ok := restrictMessages[pgErr.ConstraintName]
			if !ok {
				msg = "the record is still referenced: " + pgErr.Detail
			}
			return &errs.Error{Kind: errs.ErrPrecondition, Msg: msg, Err: err}
		case pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException, pgerrcode.NotNullViolation:
			return &errs.Error{Kind: errs.ErrValidation, Msg: pgErr.Message, Err: err}
		}
	}
	return errs.Infrastructure(err)
}
