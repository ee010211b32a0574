package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var historyColumns = []string{"h.id", "h.event_uid", "h.event_type", "h.time", "h.comment"}

func (r *repository) ListHistory(ctx context.Context, opts model.ListOptions) ([]model.HistoryEvent, error) {
	q := where(qb.Select(historyColumns...).From(historyTableName+" h"), opts.Where)
	return collect[model.HistoryEvent](ctx, r, orderBy(q, opts.OrderBy, "h.time desc, h.id desc"))
}

func (r *repository) AppendHistory(ctx context.Context, event model.HistoryEvent) (model.HistoryEvent, error) {
	if event.EventUid == uuid.Nil {
		event.EventUid = uuid.New()
	}
	ins := qb.Insert(historyTableName)
	if event.Time.IsZero() {
		ins = ins.Columns("event_uid", "event_type", "comment").
			Values(event.EventUid, event.EventType, event.Comment)
	} else {
		ins = ins.Columns("event_uid", "event_type", "time", "comment").
			Values(event.EventUid, event.EventType, event.Time.UTC(), event.Comment)
	}
	query, args, err := ins.Suffix("returning id, event_uid, event_type, time, comment").ToSql()
	if err != nil {
		return model.HistoryEvent{}, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return model.HistoryEvent{}, err
	}
	stored, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.HistoryEvent])
	if err != nil {
		return model.HistoryEvent{}, errors.Wrap(err, "append history")
	}
	return stored, nil
}

func (r *repository) CountHistorySince(ctx context.Context, eventType model.EventType, since time.Time) (int, error) {
	query, args, err := qb.Select("count(*)").
		From(historyTableName).
		Where(sq.Eq{"event_type": eventType}).
		Where(sq.GtOrEq{"time": since.UTC()}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
