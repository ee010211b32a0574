package dump

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
	"github.com/Astemirdum/librarian/librarian/internal/validation"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type File struct {
	Books   []Book   `json:"books"`
	Readers []Reader `json:"readers"`
	History []Event  `json:"history,omitempty"`
}

type Book struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type Reader struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone"`
	Books     []Loan `json:"books"`
}

type Loan struct {
	BookCode  string    `json:"book_code"`
	IssueDate time.Time `json:"issue_date"`
}

type Event struct {
	EventType model.EventType `json:"event_type"`
	Time      time.Time       `json:"time"`
	Comment   string          `json:"comment"`
}

// Stats summarizes an import.
type Stats struct {
	Books   int `json:"books"`
	Readers int `json:"readers"`
	Loans   int `json:"loans"`
	Events  int `json:"events"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d books, %d readers, %d loans, %d history events", s.Books, s.Readers, s.Loans, s.Events)
}

func Encode(w io.Writer, f File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(f)
}

func Decode(r io.Reader) (File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return File{}, errs.Validation("malformed dump: " + err.Error())
	}
	return f, nil
}

// Validate checks the file without touching the store.
func (f File) Validate() error {
	codes := make(map[string]struct{}, len(f.Books))
	for i, b := range f.Books {
		if strings.TrimSpace(b.Code) == "" {
			return &errs.FieldValidationError{Field: fmt.Sprintf("books[%d].code", i), Reason: "is required"}
		}
		if b.Count < 0 {
			return &errs.FieldValidationError{Field: fmt.Sprintf("books[%d].count", i), Reason: "must be a non-negative integer"}
		}
		if _, ok := codes[b.Code]; ok {
			return errs.Validation("book " + b.Code + " is listed twice")
		}
		codes[b.Code] = struct{}{}
	}
	phones := make(map[string]struct{}, len(f.Readers))
	for i, r := range f.Readers {
		if !validation.IsPhoneNumber(r.Phone) {
			return &errs.FieldValidationError{Field: fmt.Sprintf("readers[%d].phone", i), Reason: "must be +7 followed by 10 digits"}
		}
		if _, ok := phones[r.Phone]; ok {
			return errs.Validation("reader " + r.Phone + " is listed twice")
		}
		phones[r.Phone] = struct{}{}
	}
	for i, e := range f.History {
		if !e.EventType.Valid() {
			return &errs.FieldValidationError{Field: fmt.Sprintf("history[%d].event_type", i), Reason: "unknown event " + string(e.EventType)}
		}
	}
	return nil
}

// Export reads books, readers with their loans and, optionally, history.
func Export(ctx context.Context, tx repository.Tx, withHistory bool) (File, error) {
	books, err := tx.ListBooks(ctx, model.ListOptions{})
	if err != nil {
		return File{}, err
	}
	readers, err := tx.ListReaders(ctx, model.ListOptions{})
	if err != nil {
		return File{}, err
	}
	loans, err := tx.ListLoans(ctx, model.ListOptions{OrderBy: "l.issue_date, l.id"})
	if err != nil {
		return File{}, err
	}

	f := File{
		Books:   make([]Book, 0, len(books)),
		Readers: make([]Reader, 0, len(readers)),
	}
	for _, b := range books {
		f.Books = append(f.Books, Book{Code: b.Code, Name: b.Name, Author: b.Author, Count: b.Count})
	}

	held := make(map[int64][]Loan, len(readers))
	for _, l := range loans {
		held[l.ReaderID] = append(held[l.ReaderID], Loan{BookCode: l.BookCode, IssueDate: l.IssueDate.UTC()})
	}
	for _, r := range readers {
		books := held[r.ID]
		if books == nil {
			books = []Loan{}
		}
		f.Readers = append(f.Readers, Reader{
			Firstname: r.Firstname,
			Lastname:  r.Lastname,
			Phone:     r.Phone,
			Books:     books,
		})
	}

	if withHistory {
		events, err := tx.ListHistory(ctx, model.ListOptions{OrderBy: "h.time, h.id"})
		if err != nil {
			return File{}, err
		}
		for _, e := range events {
			f.History = append(f.History, Event{EventType: e.EventType, Time: e.Time.UTC(), Comment: e.Comment})
		}
	}
	return f, nil
}

// Import upserts books by code and readers by phone, replaces the loans of
// every listed reader and appends listed history. It must run inside one unit
// of work: any error leaves the store unchanged.
func Import(ctx context.Context, tx repository.Tx, f File) (Stats, error) {
	if err := f.Validate(); err != nil {
		return Stats{}, err
	}
	var st Stats

	ids := make(map[string]int64, len(f.Books))
	for _, b := range f.Books {
		stored, err := tx.UpsertBook(ctx, model.Book{Code: b.Code, Name: b.Name, Author: b.Author, Count: b.Count})
		if err != nil {
			return Stats{}, errors.Wrapf(err, "book %s", b.Code)
		}
		ids[b.Code] = stored.ID
		st.Books++
	}

	for _, r := range f.Readers {
		stored, err := tx.UpsertReader(ctx, model.Reader{Firstname: r.Firstname, Lastname: r.Lastname, Phone: r.Phone})
		if err != nil {
			return Stats{}, errors.Wrapf(err, "reader %s", r.Phone)
		}
		if _, err := tx.DeleteLoansByReader(ctx, stored.ID); err != nil {
			return Stats{}, err
		}
		for _, l := range r.Books {
			bookID, err := bookIDByCode(ctx, tx, ids, l.BookCode)
			if err != nil {
				return Stats{}, err
			}
			if _, err := tx.CreateLoan(ctx, bookID, stored.ID, l.IssueDate); err != nil {
				return Stats{}, err
			}
			st.Loans++
		}
		st.Readers++
	}

	for _, e := range f.History {
		ev := model.NewEvent(e.EventType, e.Comment)
		ev.Time = e.Time
		if _, err := tx.AppendHistory(ctx, ev); err != nil {
			return Stats{}, err
		}
		st.Events++
	}

	overdrawn, err := tx.OverdrawnBooks(ctx)
	if err != nil {
		return Stats{}, err
	}
	if len(overdrawn) > 0 {
		b := overdrawn[0]
		return Stats{}, errs.Validation(fmt.Sprintf("book %s: count %d is below %d issued copies", b.Code, b.Count, b.TakenCount))
	}
	return st, nil
}

func bookIDByCode(ctx context.Context, tx repository.Tx, ids map[string]int64, code string) (int64, error) {
	if id, ok := ids[code]; ok {
		return id, nil
	}
	b, err := tx.GetBookByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return 0, errs.Validation("unknown book code " + code)
		}
		return 0, err
	}
	ids[code] = b.ID
	return b.ID, nil
}
