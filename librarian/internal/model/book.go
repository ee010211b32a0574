package model

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	ColCode      = "Code"
	ColName      = "Name"
	ColAuthor    = "Author"
	ColAvailable = "Available"
	ColTotal     = "Total"
)

type Book struct {
	ID     int64  `json:"id" db:"id"`
	Code   string `json:"code" db:"code"`
	Name   string `json:"name" db:"name"`
	Author string `json:"author" db:"author"`
	Count  int    `json:"count" db:"count"`
	// TakenCount is the number of loans at load time.
	TakenCount int `json:"takenCount" db:"taken_count"`
}

func (b Book) AvailableCount() int {
	return b.Count - b.TakenCount
}

func (b Book) Key() int64 { return b.ID }

func (b Book) Values() map[string]string {
	return map[string]string{
		ColCode:      b.Code,
		ColName:      b.Name,
		ColAuthor:    b.Author,
		ColAvailable: fmt.Sprintf("%d pcs.", b.AvailableCount()),
		ColTotal:     fmt.Sprintf("%d pcs.", b.Count),
	}
}

type BookForm struct {
	ID     int64       `json:"-"`
	Code   string      `json:"code" validate:"required,max=32"`
	Name   string      `json:"name" validate:"required,max=128"`
	Author string      `json:"author" validate:"required,max=128"`
	Count  json.Number `json:"count" validate:"required"`
}

type bookDescriptor struct{}

var Books Descriptor = bookDescriptor{}

func (bookDescriptor) Kind() Kind    { return KindBook }
func (bookDescriptor) Title() string { return "Books" }

func (bookDescriptor) Columns() []string {
	return []string{ColCode, ColName, ColAuthor, ColAvailable, ColTotal}
}

func (bookDescriptor) Search(query string) sq.Sqlizer {
	return searchAny(query, "b.code", "b.name", "b.author")
}

func (bookDescriptor) SortFields() map[string]string {
	return map[string]string{
		ColCode:      "b.code",
		ColName:      "b.name",
		ColAuthor:    "b.author",
		ColAvailable: "b.count - count(l.id)",
		ColTotal:     "b.count",
	}
}
