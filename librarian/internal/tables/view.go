package tables

import (
	"context"
	"sync"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

//go:generate go run github.com/golang/mock/mockgen -source=view.go -destination=mocks/mock.go

// Source loads the current rows of an entity kind.
type Source interface {
	Load(ctx context.Context, kind model.Kind, opts model.ListOptions) ([]model.Row, error)
}

// Renderer receives every fresh snapshot of a view.
type Renderer interface {
	Render(t Table)
}

type RendererFunc func(t Table)

func (f RendererFunc) Render(t Table) { f(t) }

// Viewer is a table view the registry can refresh.
type Viewer interface {
	Kind() model.Kind
	Refresh(ctx context.Context) error
	Snapshot() Table
	SetFilter(search, sort string, desc bool) error
}

type Table struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	Search  string   `json:"search,omitempty"`
	Sort    string   `json:"sort,omitempty"`
	Desc    bool     `json:"desc,omitempty"`
	// Generation grows by one on every successful refresh.
	Generation  uint64    `json:"generation"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

type Row struct {
	Key   int64    `json:"key"`
	Cells []string `json:"cells"`
}

type Option func(v *View)

// WithDefaultFilter narrows every query of the view, e.g. loans of one reader.
func WithDefaultFilter(pred sq.Sqlizer) Option {
	return func(v *View) {
		v.filter = pred
	}
}

func WithRenderer(r Renderer) Option {
	return func(v *View) {
		v.renderer = r
	}
}

func WithTitle(title string) Option {
	return func(v *View) {
		v.title = title
	}
}

type View struct {
	kind     model.Kind
	desc     model.Descriptor
	title    string
	source   Source
	filter   sq.Sqlizer
	renderer Renderer

	// mu serializes refreshes and guards the fields below.
	mu         sync.Mutex
	search     string
	sort       string
	sortDesc   bool
	rows       []model.Row
	generation uint64
	refreshed  time.Time
}

func NewView(kind model.Kind, source Source, opts ...Option) (*View, error) {
	d, ok := model.DescriptorOf(kind)
	if !ok {
		return nil, errors.Errorf("no descriptor for kind %d", kind)
	}
	v := &View{
		kind:   kind,
		desc:   d,
		title:  d.Title(),
		source: source,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *View) Kind() model.Kind { return v.kind }

// Refresh re-runs the query with the current filter state and replaces the rows.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows, err := v.source.Load(ctx, v.kind, v.listOptions())
	if err != nil {
		return errors.Wrapf(err, "refresh %s", v.kind)
	}
	v.rows = rows
	v.generation++
	v.refreshed = time.Now()

	if v.renderer != nil {
		v.renderer.Render(v.snapshot())
	}
	return nil
}

func (v *View) Snapshot() Table {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

// SetFilter stores search text and sort order for the next refresh. An empty
// sort keeps the repository's default order.
func (v *View) SetFilter(search, sort string, desc bool) error {
	if sort != "" {
		s, ok := v.desc.(model.Sortable)
		if !ok {
			return errs.Validation(v.title + " cannot be sorted")
		}
		if _, ok := s.SortFields()[sort]; !ok {
			return &errs.FieldValidationError{Field: "sort", Reason: "unknown column " + sort}
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search, v.sort, v.sortDesc = search, sort, desc
	return nil
}

func (v *View) listOptions() model.ListOptions {
	var preds sq.And
	if v.filter != nil {
		preds = append(preds, v.filter)
	}
	if p := v.desc.Search(v.search); p != nil {
		preds = append(preds, p)
	}

	var opts model.ListOptions
	switch len(preds) {
	case 0:
	case 1:
		opts.Where = preds[0]
	default:
		opts.Where = preds
	}

	if v.sort != "" {
		if s, ok := v.desc.(model.Sortable); ok {
			opts.OrderBy = s.SortFields()[v.sort]
			if v.sortDesc {
				opts.OrderBy += " desc"
			}
		}
	}
	return opts
}

func (v *View) snapshot() Table {
	cols := v.desc.Columns()
	t := Table{
		Kind:        v.kind.String(),
		Title:       v.title,
		Columns:     cols,
		Rows:        make([]Row, 0, len(v.rows)),
		Search:      v.search,
		Sort:        v.sort,
		Desc:        v.sortDesc,
		Generation:  v.generation,
		RefreshedAt: v.refreshed,
	}
	for _, r := range v.rows {
		values := r.Values()
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = values[c]
		}
		t.Rows = append(t.Rows, Row{Key: r.Key(), Cells: cells})
	}
	return t
}
