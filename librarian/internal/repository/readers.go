package repository

import (
	"context"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	sq "github.com/Masterminds/squirrel"
)

func readerSelect() sq.SelectBuilder {
	return qb.Select("r.id", "r.firstname", "r.lastname", "r.phone", "count(l.id) as books_taken").
		From(readersTableName + " r").
		LeftJoin(loansTableName + " l on l.reader_id = r.id").
		GroupBy("r.id")
}

func (r *repository) ListReaders(ctx context.Context, opts model.ListOptions) ([]model.Reader, error) {
	q := where(readerSelect(), opts.Where)
	return collect[model.Reader](ctx, r, orderBy(q, opts.OrderBy, "r.lastname, r.firstname"))
}

func (r *repository) GetReader(ctx context.Context, id int64) (model.Reader, error) {
	return collectOne[model.Reader](ctx, r, readerSelect().Where(sq.Eq{"r.id": id}), "reader", id)
}

func (r *repository) LockReader(ctx context.Context, id int64) (model.Reader, error) {
	if err := r.lock(ctx, readersTableName, id, "reader"); err != nil {
		return model.Reader{}, err
	}
	return r.GetReader(ctx, id)
}

func (r *repository) GetReaderByPhone(ctx context.Context, phone string) (model.Reader, error) {
	return collectOne[model.Reader](ctx, r, readerSelect().Where(sq.Eq{"r.phone": phone}), "reader with phone", phone)
}

func (r *repository) InsertReader(ctx context.Context, reader model.Reader) (model.Reader, error) {
	id, err := r.insertReturningID(ctx, qb.Insert(readersTableName).
		Columns("firstname", "lastname", "phone").
		Values(reader.Firstname, reader.Lastname, reader.Phone))
	if err != nil {
		return model.Reader{}, err
	}
	return r.GetReader(ctx, id)
}

func (r *repository) UpdateReader(ctx context.Context, reader model.Reader) (model.Reader, error) {
	n, err := r.exec(ctx, qb.Update(readersTableName).
		Set("firstname", reader.Firstname).
		Set("lastname", reader.Lastname).
		Set("phone", reader.Phone).
		Where(sq.Eq{"id": reader.ID}))
	if err != nil {
		return model.Reader{}, err
	}
	if n == 0 {
		return model.Reader{}, errs.NotFound("reader %d not found", reader.ID)
	}
	return r.GetReader(ctx, reader.ID)
}

func (r *repository) UpsertReader(ctx context.Context, reader model.Reader) (model.Reader, error) {
	id, err := r.insertReturningID(ctx, qb.Insert(readersTableName).
		Columns("firstname", "lastname", "phone").
		Values(reader.Firstname, reader.Lastname, reader.Phone).
		Suffix("on conflict (phone) do update set firstname = excluded.firstname, lastname = excluded.lastname"))
	if err != nil {
		return model.Reader{}, err
	}
	return r.GetReader(ctx, id)
}

// DeleteReader fails with a restrict violation while loans reference the reader.
func (r *repository) DeleteReader(ctx context.Context, id int64) (model.Reader, error) {
	reader, err := r.GetReader(ctx, id)
	if err != nil {
		return model.Reader{}, err
	}
	if _, err := r.exec(ctx, qb.Delete(readersTableName).Where(sq.Eq{"id": id})); err != nil {
		return model.Reader{}, err
	}
	return reader, nil
}

func (r *repository) CountReaders(ctx context.Context) (int, error) {
	query, args, err := qb.Select("count(*)").From(readersTableName).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
