package repository

import (
	"context"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	sq "github.com/Masterminds/squirrel"
)

func bookSelect() sq.SelectBuilder {
	return qb.Select("b.id", "b.code", "b.name", "b.author", "b.count", "count(l.id) as taken_count").
		From(booksTableName + " b").
		LeftJoin(loansTableName + " l on l.book_id = b.id").
		GroupBy("b.id")
}

func (r *repository) ListBooks(ctx context.Context, opts model.ListOptions) ([]model.Book, error) {
	q := where(bookSelect(), opts.Where)
	return collect[model.Book](ctx, r, orderBy(q, opts.OrderBy, "b.code"))
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return collectOne[model.Book](ctx, r, bookSelect().Where(sq.Eq{"b.id": id}), "book", id)
}

func (r *repository) LockBook(ctx context.Context, id int64) (model.Book, error) {
	if err := r.lock(ctx, booksTableName, id, "book"); err != nil {
		return model.Book{}, err
	}
	return r.GetBook(ctx, id)
}

func (r *repository) GetBookByCode(ctx context.Context, code string) (model.Book, error) {
	return collectOne[model.Book](ctx, r, bookSelect().Where(sq.Eq{"b.code": code}), "book", code)
}

func (r *repository) InsertBook(ctx context.Context, book model.Book) (model.Book, error) {
	id, err := r.insertReturningID(ctx, qb.Insert(booksTableName).
		Columns("code", "name", "author", "count").
		Values(book.Code, book.Name, book.Author, book.Count))
	if err != nil {
		return model.Book{}, err
	}
	return r.GetBook(ctx, id)
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) (model.Book, error) {
	n, err := r.exec(ctx, qb.Update(booksTableName).
		Set("code", book.Code).
		Set("name", book.Name).
		Set("author", book.Author).
		Set("count", book.Count).
		Where(sq.Eq{"id": book.ID}))
	if err != nil {
		return model.Book{}, err
	}
	if n == 0 {
		return model.Book{}, errs.NotFound("book %d not found", book.ID)
	}
	return r.GetBook(ctx, book.ID)
}

func (r *repository) UpsertBook(ctx context.Context, book model.Book) (model.Book, error) {
	id, err := r.insertReturningID(ctx, qb.Insert(booksTableName).
		Columns("code", "name", "author", "count").
		Values(book.Code, book.Name, book.Author, book.Count).
		Suffix("on conflict (code) do update set name = excluded.name, author = excluded.author, count = excluded.count"))
	if err != nil {
		return model.Book{}, err
	}
	return r.GetBook(ctx, id)
}

func (r *repository) DeleteBook(ctx context.Context, id int64) (model.Book, error) {
	book, err := r.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	if _, err := r.exec(ctx, qb.Delete(booksTableName).Where(sq.Eq{"id": id})); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) OverdrawnBooks(ctx context.Context) ([]model.Book, error) {
	return collect[model.Book](ctx, r, bookSelect().Having("b.count < count(l.id)").OrderBy("b.code"))
}
