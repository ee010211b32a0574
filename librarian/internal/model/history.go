package model

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type EventType string

const (
	EventBookTaken      EventType = "BOOK_TAKEN"
	EventBookReturned   EventType = "BOOK_RETURNED"
	EventNewReader      EventType = "NEW_READER"
	EventReaderLeft     EventType = "READER_LEFT"
	EventBookWrittenOff EventType = "BOOK_WRITTEN_OFF"
	EventBookAdded      EventType = "BOOK_ADDED"
	EventBookChanged    EventType = "BOOK_CHANGED"
	EventBookDeleted    EventType = "BOOK_DELETED"
	EventReaderChanged  EventType = "READER_CHANGED"
)

func (t EventType) Valid() bool {
	switch t {
	case EventBookTaken, EventBookReturned, EventNewReader, EventReaderLeft, EventBookWrittenOff,
		EventBookAdded, EventBookChanged, EventBookDeleted, EventReaderChanged:
		return true
	}
	return false
}

const (
	ColEvent   = "Event"
	ColTime    = "Time"
	ColComment = "Comment"
)

// HistoryEvent is an append-only log record.
type HistoryEvent struct {
	ID        int64     `json:"id" db:"id"`
	EventUid  uuid.UUID `json:"eventUid" db:"event_uid"`
	EventType EventType `json:"eventType" db:"event_type"`
	Time      time.Time `json:"time" db:"time"`
	Comment   string    `json:"comment" db:"comment"`
}

func NewEvent(t EventType, comment string) HistoryEvent {
	return HistoryEvent{
		EventUid:  uuid.New(),
		EventType: t,
		Comment:   comment,
	}
}

func (h HistoryEvent) Key() int64 { return h.ID }

func (h HistoryEvent) Values() map[string]string {
	return map[string]string{
		ColEvent:   string(h.EventType),
		ColTime:    h.Time.Local().Format(timeLayout),
		ColComment: h.Comment,
	}
}

type historyDescriptor struct{}

var History Descriptor = historyDescriptor{}

func (historyDescriptor) Kind() Kind    { return KindHistory }
func (historyDescriptor) Title() string { return "History" }

func (historyDescriptor) Columns() []string {
	return []string{ColEvent, ColTime, ColComment}
}

func (historyDescriptor) Search(query string) sq.Sqlizer {
	return searchAny(query, "h.comment", "h.event_type")
}

func (historyDescriptor) SortFields() map[string]string {
	return map[string]string{
		ColEvent: "h.event_type",
		ColTime:  "h.time",
	}
}
