package controller

import (
	"context"
	"errors"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
	"go.uber.org/zap"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Controller struct {
	store     repository.Store
	refresher Refresher
	publisher Publisher
	validator Validator
	log       *zap.Logger
	now       func() time.Time
	window    time.Duration
}

type Option func(c *Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithReportWindow sets the statistics window of the monthly report.
func WithReportWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

func New(store repository.Store, refresher Refresher, publisher Publisher, validator Validator, log *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		refresher: refresher,
		publisher: publisher,
		validator: validator,
		log:       log.Named("controller"),
		now:       time.Now,
		window:    30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// action is one operator command. Stages run in order: validate, check in a
// read-only unit of work, prompt, then mutate in a unit of work that also
// appends the returned history event. Views of touches are refreshed after commit.
type action struct {
	name     string
	validate func() error
	check    func(ctx context.Context, tx repository.Tx) error
	prompt   func() string
	// mutate may return nil when the action records no history of its own.
	mutate  func(ctx context.Context, tx repository.Tx) (*model.HistoryEvent, error)
	touches []model.Kind
	done    func() string
}

func (c *Controller) run(ctx context.Context, ui Interaction, a action) error {
	log := c.log.With(zap.String("action", a.name))

	if a.validate != nil {
		if err := a.validate(); err != nil {
			return c.fail(ctx, ui, log, a, err)
		}
	}
	if a.check != nil {
		if err := c.store.WithUnitOfWork(ctx, a.check); err != nil {
			return c.fail(ctx, ui, log, a, err)
		}
	}
	if a.prompt != nil && !ui.Confirm(ctx, a.prompt()) {
		log.Info("canceled")
		return errs.ErrCanceled
	}

	var stored *model.HistoryEvent
	err := c.store.WithUnitOfWork(ctx, func(ctx context.Context, tx repository.Tx) error {
		ev, err := a.mutate(ctx, tx)
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		saved, err := tx.AppendHistory(ctx, *ev)
		if err != nil {
			return err
		}
		stored = &saved
		return nil
	})
	if err != nil {
		return c.fail(ctx, ui, log, a, err)
	}

	if err := c.refresher.Refresh(ctx, a.touches...); err != nil {
		log.Warn("refresh after commit", zap.Error(err))
		ui.Notify(ctx, Notification{Level: LevelWarning, Title: a.name, Message: "saved, but the tables could not be reloaded"})
	}
	if stored != nil {
		if err := c.publisher.Publish(ctx, *stored); err != nil {
			log.Warn("publish history event", zap.String("event_uid", stored.EventUid.String()), zap.Error(err))
		}
	}

	log.Info("done")
	if a.done != nil {
		ui.Notify(ctx, Notification{Level: LevelInfo, Title: a.name, Message: a.done()})
	}
	return nil
}

func (c *Controller) fail(ctx context.Context, ui Interaction, log *zap.Logger, a action, err error) error {
	if !errs.Translated(err) {
		err = errs.Infrastructure(err)
	}
	if errors.Is(err, errs.ErrInfrastructure) {
		log.Error("failed", zap.Error(err))
	} else {
		log.Info("rejected", zap.String("kind", kindOf(err)), zap.String("reason", errs.Message(err)))
	}
	ui.Notify(ctx, Notification{Level: LevelError, Title: a.name, Message: errs.Message(err)})
	return err
}

func kindOf(err error) string {
	for _, k := range []error{errs.ErrValidation, errs.ErrPrecondition, errs.ErrConflict, errs.ErrNotFound, errs.ErrInfrastructure} {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return "unknown"
}
