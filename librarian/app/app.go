package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/librarian/librarian/config"
	"github.com/Astemirdum/librarian/librarian/internal/controller"
	"github.com/Astemirdum/librarian/librarian/internal/events"
	"github.com/Astemirdum/librarian/librarian/internal/handler"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
	"github.com/Astemirdum/librarian/librarian/internal/server"
	"github.com/Astemirdum/librarian/librarian/internal/tables"
	"github.com/Astemirdum/librarian/librarian/internal/validation"
	"github.com/Astemirdum/librarian/librarian/migrations"
	"github.com/Astemirdum/librarian/pkg/kafka"
	"github.com/Astemirdum/librarian/pkg/logger"
	"github.com/Astemirdum/librarian/pkg/postgres"
	"github.com/Astemirdum/librarian/pkg/validate"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "librarian")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	store := repository.NewStore(db, log)
	source := repository.NewSource(store)

	registry := tables.NewRegistry(log)
	for _, kind := range model.AllKinds {
		kind := kind
		v, err := tables.NewView(kind, source, tables.WithRenderer(tables.RendererFunc(func(t tables.Table) {
			log.Debug("view rendered", zap.Stringer("kind", kind), zap.Int("rows", len(t.Rows)), zap.Uint64("generation", t.Generation))
		})))
		if err != nil {
			log.Fatal("tables.NewView", zap.Error(err))
		}
		registry.Register(kind, v)
	}
	if err := registry.Refresh(context.Background()); err != nil {
		log.Fatal("initial refresh", zap.Error(err))
	}

	publisher := events.NewNopPublisher()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		publisher = events.NewKafkaPublisher(producer, cfg.Kafka.Topic, log)
	}

	ctrl := controller.New(store, registry, publisher,
		validate.NewCustomValidator(validate.WithRule("phone", validation.IsPhoneNumber)),
		log, controller.WithReportWindow(cfg.Report.Window))

	h := handler.New(ctrl, registry, source, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = publisher.Close(); err != nil {
		log.Warn("publisher.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
