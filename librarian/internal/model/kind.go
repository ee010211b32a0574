package model

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Kind identifies an entity type shown in a table view.
type Kind uint8

const (
	KindBook Kind = iota + 1
	KindReader
	KindLoan
	KindHistory
)

var AllKinds = []Kind{KindBook, KindReader, KindLoan, KindHistory}

func (k Kind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindReader:
		return "reader"
	case KindLoan:
		return "loan"
	case KindHistory:
		return "history"
	}
	return "unknown"
}

func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSuffix(strings.ToLower(s), "s")
	for _, k := range AllKinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Descriptor is the display contract of an entity type.
type Descriptor interface {
	Kind() Kind
	Title() string
	Columns() []string
	// Search returns nil for a blank query.
	Search(query string) sq.Sqlizer
}

// Sortable is implemented by descriptors whose tables can be ordered by column label.
type Sortable interface {
	SortFields() map[string]string
}

// Row is one entity instance as a table row.
type Row interface {
	Key() int64
	Values() map[string]string
}

// ListOptions narrow and order a repository listing.
type ListOptions struct {
	Where   sq.Sqlizer
	OrderBy string
}

func DescriptorOf(k Kind) (Descriptor, bool) {
	switch k {
	case KindBook:
		return Books, true
	case KindReader:
		return Readers, true
	case KindLoan:
		return Loans, true
	case KindHistory:
		return History, true
	}
	return nil, false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	return "%" + likeEscaper.Replace(query) + "%", true
}

func searchAny(query string, columns ...string) sq.Sqlizer {
	p, ok := likePattern(query)
	if !ok {
		return nil
	}
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.ILike{col: p})
	}
	return or
}

const timeLayout = "2006-01-02 15:04"
