package model_test

import (
	"testing"

	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/stretchr/testify/require"
)

func TestBook_AvailableCount(t *testing.T) {
	t.Parallel()
	b := model.Book{ID: 1, Code: "B1", Name: "Dune", Author: "Herbert", Count: 5, TakenCount: 2}
	require.Equal(t, 3, b.AvailableCount())

	vals := b.Values()
	require.Equal(t, "3 pcs.", vals[model.ColAvailable])
	require.Equal(t, "5 pcs.", vals[model.ColTotal])
	for _, col := range model.Books.Columns() {
		require.Contains(t, vals, col)
	}
}

func TestDescriptors_ColumnsMatchValues(t *testing.T) {
	t.Parallel()
	rows := map[model.Kind]model.Row{
		model.KindBook:    model.Book{},
		model.KindReader:  model.Reader{},
		model.KindLoan:    model.Loan{},
		model.KindHistory: model.HistoryEvent{},
	}
	for kind, row := range rows {
		d, ok := model.DescriptorOf(kind)
		require.True(t, ok, kind.String())
		require.Equal(t, kind, d.Kind())
		require.NotEmpty(t, d.Title())
		vals := row.Values()
		require.Len(t, vals, len(d.Columns()), kind.String())
		for _, col := range d.Columns() {
			require.Contains(t, vals, col)
		}
		if s, ok := d.(model.Sortable); ok {
			for label := range s.SortFields() {
				require.Contains(t, d.Columns(), label)
			}
		}
	}
}

func TestDescriptor_Search(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		d        model.Descriptor
		query    string
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:  "blank query has no filter",
			d:     model.Books,
			query: "   ",
		},
		{
			name:     "book",
			d:        model.Books,
			query:    "dune",
			wantSQL:  "(b.code ILIKE ? OR b.name ILIKE ? OR b.author ILIKE ?)",
			wantArgs: []interface{}{"%dune%", "%dune%", "%dune%"},
		},
		{
			name:     "reader escapes wildcards",
			d:        model.Readers,
			query:    "50%_",
			wantSQL:  "(r.firstname ILIKE ? OR r.lastname ILIKE ? OR r.phone ILIKE ?)",
			wantArgs: []interface{}{`%50\%\_%`, `%50\%\_%`, `%50\%\_%`},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pred := tt.d.Search(tt.query)
			if tt.wantSQL == "" {
				require.Nil(t, pred)
				return
			}
			sql, args, err := pred.ToSql()
			require.NoError(t, err)
			require.Equal(t, tt.wantSQL, sql)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"book", "books", "Readers", "loan", "history"} {
		_, ok := model.ParseKind(s)
		require.True(t, ok, s)
	}
	_, ok := model.ParseKind("authors")
	require.False(t, ok)
}

func TestLoansOf(t *testing.T) {
	t.Parallel()
	sql, args, err := model.LoansOfReader(7).ToSql()
	require.NoError(t, err)
	require.Equal(t, "l.reader_id = ?", sql)
	require.Equal(t, []interface{}{int64(7)}, args)
}
