package events

import (
	"context"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher forwards committed history events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event model.HistoryEvent) error
	Close() error
}

// Message is the wire form of a history event.
type Message struct {
	EventUid  string    `json:"eventUid"`
	EventType string    `json:"eventType"`
	Time      time.Time `json:"time"`
	Comment   string    `json:"comment"`
}

func NewMessage(e model.HistoryEvent) Message {
	return Message{
		EventUid:  e.EventUid.String(),
		EventType: string(e.EventType),
		Time:      e.Time.UTC(),
		Comment:   e.Comment,
	}
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) *kafkaPublisher {
	log = log.Named("events")
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log,
		cb: circuit_breaker.New(20, 10*time.Second, 0.5, 2,
			circuit_breaker.WithOnStateChange(func(from, to circuit_breaker.Status) {
				log.Warn("kafka breaker", zap.Stringer("from", from), zap.Stringer("to", to))
			})),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event model.HistoryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(NewMessage(event))
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.EventUid.String()),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrap(err, "send message")
		}
		p.log.Debug("published",
			zap.String("type", string(event.EventType)),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, model.HistoryEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
