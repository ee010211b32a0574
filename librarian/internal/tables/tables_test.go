package tables_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/tables"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tables_mocks "github.com/Astemirdum/librarian/librarian/internal/tables/mocks"
)

func books(bb ...model.Book) []model.Row {
	rows := make([]model.Row, 0, len(bb))
	for _, b := range bb {
		rows = append(rows, b)
	}
	return rows
}

func TestView_Refresh(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	src := tables_mocks.NewMockSource(c)
	ctx := context.Background()

	first := books(model.Book{ID: 1, Code: "B1", Name: "Dune", Author: "Herbert", Count: 2, TakenCount: 1})
	second := books(
		model.Book{ID: 2, Code: "B2", Name: "Solaris", Author: "Lem", Count: 1},
		model.Book{ID: 3, Code: "B3", Name: "Roadside Picnic", Author: "Strugatsky", Count: 3, TakenCount: 3},
	)
	gomock.InOrder(
		src.EXPECT().Load(ctx, model.KindBook, model.ListOptions{}).Return(first, nil),
		src.EXPECT().Load(ctx, model.KindBook, model.ListOptions{}).Return(second, nil),
	)

	var rendered []tables.Table
	v, err := tables.NewView(model.KindBook, src, tables.WithRenderer(tables.RendererFunc(func(t tables.Table) {
		rendered = append(rendered, t)
	})))
	require.NoError(t, err)

	require.NoError(t, v.Refresh(ctx))
	snap := v.Snapshot()
	require.Equal(t, "Books", snap.Title)
	require.Equal(t, []string{"Code", "Name", "Author", "Available", "Total"}, snap.Columns)
	require.Equal(t, []tables.Row{{Key: 1, Cells: []string{"B1", "Dune", "Herbert", "1 pcs.", "2 pcs."}}}, snap.Rows)
	require.EqualValues(t, 1, snap.Generation)

	require.NoError(t, v.Refresh(ctx))
	snap = v.Snapshot()
	require.Len(t, snap.Rows, 2)
	require.Equal(t, int64(2), snap.Rows[0].Key)
	require.Equal(t, "0 pcs.", snap.Rows[1].Cells[3])
	require.EqualValues(t, 2, snap.Generation)
	require.Len(t, rendered, 2)
}

func TestView_RefreshError(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	src := tables_mocks.NewMockSource(c)
	ctx := context.Background()
	src.EXPECT().Load(ctx, model.KindReader, gomock.Any()).Return(nil, errs.Infrastructure(errors.New("conn refused")))

	v, err := tables.NewView(model.KindReader, src)
	require.NoError(t, err)
	err = v.Refresh(ctx)
	require.ErrorIs(t, err, errs.ErrInfrastructure)
	require.Zero(t, v.Snapshot().Generation)
}

func TestView_ListOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		kind      model.Kind
		opts      []tables.Option
		search    string
		sort      string
		desc      bool
		wantSQL   string
		wantArgs  []interface{}
		wantOrder string
	}{
		{
			name: "no filter",
			kind: model.KindBook,
		},
		{
			name:      "search and sort",
			kind:      model.KindReader,
			search:    "ivan",
			sort:      model.ColBooksTaken,
			desc:      true,
			wantSQL:   "(r.firstname ILIKE ? OR r.lastname ILIKE ? OR r.phone ILIKE ?)",
			wantArgs:  []interface{}{"%ivan%", "%ivan%", "%ivan%"},
			wantOrder: "count(l.id) desc",
		},
		{
			name:     "default filter only",
			kind:     model.KindLoan,
			opts:     []tables.Option{tables.WithDefaultFilter(model.LoansOfReader(7))},
			wantSQL:  "l.reader_id = ?",
			wantArgs: []interface{}{int64(7)},
		},
		{
			name:      "default filter with search",
			kind:      model.KindLoan,
			opts:      []tables.Option{tables.WithDefaultFilter(model.LoansOfBook(3))},
			search:    "+7",
			sort:      model.ColIssued,
			wantSQL:   "(l.book_id = ? AND (b.code ILIKE ? OR b.name ILIKE ? OR r.phone ILIKE ? OR r.lastname ILIKE ?))",
			wantArgs:  []interface{}{int64(3), "%+7%", "%+7%", "%+7%", "%+7%"},
			wantOrder: "l.issue_date",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()

			src := tables_mocks.NewMockSource(c)
			src.EXPECT().Load(gomock.Any(), tt.kind, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ model.Kind, opts model.ListOptions) ([]model.Row, error) {
					require.Equal(t, tt.wantOrder, opts.OrderBy)
					if tt.wantSQL == "" {
						require.Nil(t, opts.Where)
						return nil, nil
					}
					sql, args, err := opts.Where.ToSql()
					require.NoError(t, err)
					require.Equal(t, tt.wantSQL, sql)
					require.Equal(t, tt.wantArgs, args)
					return nil, nil
				})

			v, err := tables.NewView(tt.kind, src, tt.opts...)
			require.NoError(t, err)
			require.NoError(t, v.SetFilter(tt.search, tt.sort, tt.desc))
			require.NoError(t, v.Refresh(context.Background()))
		})
	}
}

func TestView_SetFilter(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()

	v, err := tables.NewView(model.KindBook, tables_mocks.NewMockSource(c))
	require.NoError(t, err)

	err = v.SetFilter("", "Genre", false)
	require.ErrorIs(t, err, errs.ErrValidation)

	require.NoError(t, v.SetFilter("dune", model.ColTotal, true))
	snap := v.Snapshot()
	require.Equal(t, "dune", snap.Search)
	require.Equal(t, model.ColTotal, snap.Sort)
	require.True(t, snap.Desc)
}

func TestRegistry_Refresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name  string
		kinds []model.Kind
		want  map[model.Kind]int
	}{
		{
			name:  "only book",
			kinds: []model.Kind{model.KindBook},
			want:  map[model.Kind]int{model.KindBook: 1},
		},
		{
			name: "all",
			want: map[model.Kind]int{model.KindBook: 1, model.KindReader: 1},
		},
		{
			name:  "duplicates collapse",
			kinds: []model.Kind{model.KindReader, model.KindReader},
			want:  map[model.Kind]int{model.KindReader: 1},
		},
		{
			name:  "unregistered kinds skipped",
			kinds: []model.Kind{model.KindLoan, model.KindHistory, model.KindBook},
			want:  map[model.Kind]int{model.KindBook: 1},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()

			reg := tables.NewRegistry(zap.NewNop())
			for _, k := range []model.Kind{model.KindBook, model.KindReader} {
				v := tables_mocks.NewMockViewer(c)
				v.EXPECT().Refresh(ctx).Return(nil).Times(tt.want[k])
				reg.Register(k, v)
			}
			require.NoError(t, reg.Refresh(ctx, tt.kinds...))
		})
	}
}

func TestRegistry_RefreshLeavesOtherViewsUntouched(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	ctx := context.Background()

	bookSrc := tables_mocks.NewMockSource(c)
	readerSrc := tables_mocks.NewMockSource(c)
	bookSrc.EXPECT().Load(ctx, model.KindBook, gomock.Any()).
		Return(books(model.Book{ID: 1, Code: "B1", Count: 1}), nil).Times(2)
	readerSrc.EXPECT().Load(ctx, model.KindReader, gomock.Any()).
		Return([]model.Row{model.Reader{ID: 1, Phone: "+71234567890"}}, nil).Times(1)

	bookView, err := tables.NewView(model.KindBook, bookSrc)
	require.NoError(t, err)
	readerView, err := tables.NewView(model.KindReader, readerSrc)
	require.NoError(t, err)

	reg := tables.NewRegistry(zap.NewNop())
	reg.Register(model.KindBook, bookView)
	reg.Register(model.KindReader, readerView)

	require.NoError(t, reg.Refresh(ctx))
	before := readerView.Snapshot()

	require.NoError(t, reg.Refresh(ctx, model.KindBook))
	require.EqualValues(t, 2, bookView.Snapshot().Generation)
	require.Equal(t, before, readerView.Snapshot())
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	ctx := context.Background()

	old := tables_mocks.NewMockViewer(c)
	fresh := tables_mocks.NewMockViewer(c)
	fresh.EXPECT().Refresh(ctx).Return(nil)

	reg := tables.NewRegistry(zap.NewNop())
	reg.Register(model.KindHistory, old)
	reg.Register(model.KindHistory, fresh)

	got, ok := reg.Lookup(model.KindHistory)
	require.True(t, ok)
	require.Same(t, fresh, got)
	require.NoError(t, reg.Refresh(ctx, model.KindHistory))
}

func TestRegistry_RefreshError(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	ctx := context.Background()

	bad := tables_mocks.NewMockViewer(c)
	good := tables_mocks.NewMockViewer(c)
	bad.EXPECT().Refresh(ctx).Return(errors.New("boom"))
	good.EXPECT().Refresh(ctx).Return(nil)

	reg := tables.NewRegistry(zap.NewNop())
	reg.Register(model.KindBook, bad)
	reg.Register(model.KindReader, good)
	require.EqualError(t, reg.Refresh(ctx), "boom")
}

type slowSource struct {
	active, peak int32
	delay        time.Duration
}

func (s *slowSource) Load(context.Context, model.Kind, model.ListOptions) ([]model.Row, error) {
	n := atomic.AddInt32(&s.active, 1)
	for {
		p := atomic.LoadInt32(&s.peak)
		if n <= p || atomic.CompareAndSwapInt32(&s.peak, p, n) {
			break
		}
	}
	time.Sleep(s.delay)
	atomic.AddInt32(&s.active, -1)
	return nil, nil
}

func TestView_RefreshIsSerialized(t *testing.T) {
	t.Parallel()
	src := &slowSource{delay: 5 * time.Millisecond}
	v, err := tables.NewView(model.KindHistory, src)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, v.Refresh(context.Background()))
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, atomic.LoadInt32(&src.peak))
	require.EqualValues(t, 8, v.Snapshot().Generation)
}

func TestNewView_UnknownKind(t *testing.T) {
	t.Parallel()
	_, err := tables.NewView(model.Kind(42), &slowSource{})
	require.Error(t, err)
}
