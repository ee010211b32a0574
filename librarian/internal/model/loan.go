package model

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	ColReader = "Reader"
	ColIssued = "Issued"
)

// Loan is one physical copy of a book held by a reader (table book_to_reader).
type Loan struct {
	ID        int64     `json:"id" db:"id"`
	BookID    int64     `json:"bookId" db:"book_id"`
	ReaderID  int64     `json:"readerId" db:"reader_id"`
	IssueDate time.Time `json:"issueDate" db:"issue_date"`

	BookCode        string `json:"bookCode" db:"book_code"`
	BookName        string `json:"bookName" db:"book_name"`
	BookAuthor      string `json:"bookAuthor" db:"book_author"`
	ReaderPhone     string `json:"readerPhone" db:"reader_phone"`
	ReaderFirstname string `json:"readerFirstname" db:"reader_firstname"`
	ReaderLastname  string `json:"readerLastname" db:"reader_lastname"`
}

func (l Loan) Key() int64 { return l.ID }

func (l Loan) Values() map[string]string {
	return map[string]string{
		ColCode:   l.BookCode,
		ColName:   l.BookName,
		ColAuthor: l.BookAuthor,
		ColReader: strings.TrimSpace(l.ReaderFirstname + " " + l.ReaderLastname),
		ColPhone:  l.ReaderPhone,
		ColIssued: l.IssueDate.Local().Format(timeLayout),
	}
}

func LoansOfReader(readerID int64) sq.Sqlizer {
	return sq.Eq{"l.reader_id": readerID}
}

func LoansOfBook(bookID int64) sq.Sqlizer {
	return sq.Eq{"l.book_id": bookID}
}

type loanDescriptor struct{}

var Loans Descriptor = loanDescriptor{}

func (loanDescriptor) Kind() Kind    { return KindLoan }
func (loanDescriptor) Title() string { return "Issued books" }

func (loanDescriptor) Columns() []string {
	return []string{ColCode, ColName, ColAuthor, ColReader, ColPhone, ColIssued}
}

func (loanDescriptor) Search(query string) sq.Sqlizer {
	return searchAny(query, "b.code", "b.name", "r.phone", "r.lastname")
}

func (loanDescriptor) SortFields() map[string]string {
	return map[string]string{
		ColCode:   "b.code",
		ColName:   "b.name",
		ColPhone:  "r.phone",
		ColIssued: "l.issue_date",
	}
}
