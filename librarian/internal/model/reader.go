package model

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	ColFirstname  = "First name"
	ColLastname   = "Last name"
	ColPhone      = "Phone"
	ColBooksTaken = "Books taken"
)

type Reader struct {
	ID         int64  `json:"id" db:"id"`
	Firstname  string `json:"firstname" db:"firstname"`
	Lastname   string `json:"lastname" db:"lastname"`
	Phone      string `json:"phone" db:"phone"`
	BooksTaken int    `json:"booksTaken" db:"books_taken"`
}

func (r Reader) Key() int64 { return r.ID }

func (r Reader) Values() map[string]string {
	return map[string]string{
		ColFirstname:  r.Firstname,
		ColLastname:   r.Lastname,
		ColPhone:      r.Phone,
		ColBooksTaken: fmt.Sprintf("%d pcs.", r.BooksTaken),
	}
}

type ReaderForm struct {
	ID        int64  `json:"-"`
	Firstname string `json:"firstname" validate:"required,max=64"`
	Lastname  string `json:"lastname" validate:"required,max=64"`
	Phone     string `json:"phone" validate:"required,phone"`
}

type readerDescriptor struct{}

var Readers Descriptor = readerDescriptor{}

func (readerDescriptor) Kind() Kind    { return KindReader }
func (readerDescriptor) Title() string { return "Readers" }

func (readerDescriptor) Columns() []string {
	return []string{ColFirstname, ColLastname, ColPhone, ColBooksTaken}
}

func (readerDescriptor) Search(query string) sq.Sqlizer {
	return searchAny(query, "r.firstname", "r.lastname", "r.phone")
}

func (readerDescriptor) SortFields() map[string]string {
	return map[string]string{
		ColFirstname:  "r.firstname",
		ColLastname:   "r.lastname",
		ColPhone:      "r.phone",
		ColBooksTaken: "count(l.id)",
	}
}
