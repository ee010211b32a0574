package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	booksTableName   = `books`
	readersTableName = `readers`
	loansTableName   = `book_to_reader`
	historyTableName = `history`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type store struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewStore(db *pgxpool.Pool, log *zap.Logger) *store {
	return &store{
		db:  db,
		log: log.Named("repo"),
	}
}

func (s *store) WithUnitOfWork(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errs.Infrastructure(errors.Wrap(err, "begin"))
	}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(tx)
			panic(p)
		}
	}()

	if err := fn(ctx, &repository{q: tx, log: s.log}); err != nil {
		s.rollback(tx)
		return translate(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translate(errors.Wrap(err, "commit"))
	}
	return nil
}

func (s *store) rollback(tx pgx.Tx) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		s.log.Warn("rollback", zap.Error(err))
	}
}

type repository struct {
	q   querier
	log *zap.Logger
}

func collect[T any](ctx context.Context, r *repository, b sq.SelectBuilder) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("select", zap.String("query", query), zap.Any("args", args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return items, nil
}

func collectOne[T any](ctx context.Context, r *repository, b sq.SelectBuilder, what string, id any) (T, error) {
	items, err := collect[T](ctx, r, b.Limit(1))
	if err != nil {
		var zero T
		return zero, err
	}
	if len(items) == 0 {
		var zero T
		return zero, errs.NotFound("%s %v not found", what, id)
	}
	return items[0], nil
}

func (r *repository) insertReturningID(ctx context.Context, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.Suffix("returning id").ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		r.log.Error("insert", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *repository) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repository) lock(ctx context.Context, table string, id int64, what string) error {
	query, args, err := qb.Select("id").From(table).Where(sq.Eq{"id": id}).Suffix("for update").ToSql()
	if err != nil {
		return err
	}
	var locked int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NotFound("%s %d not found", what, id)
		}
		return err
	}
	return nil
}

func orderBy(b sq.SelectBuilder, orderBy, fallback string) sq.SelectBuilder {
	if orderBy == "" {
		orderBy = fallback
	}
	return b.OrderBy(orderBy)
}

func where(b sq.SelectBuilder, pred sq.Sqlizer) sq.SelectBuilder {
	if pred == nil {
		return b
	}
	return b.Where(pred)
}
