package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Astemirdum/librarian/librarian/internal/controller"
	"github.com/Astemirdum/librarian/librarian/internal/dump"
	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/handler"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/tables"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/librarian/librarian/internal/handler/mocks"
	tables_mocks "github.com/Astemirdum/librarian/librarian/internal/tables/mocks"
)

type deps struct {
	librarian *service_mocks.MockLibrarian
	registry  *service_mocks.MockRegistry
	source    *tables_mocks.MockSource
	viewer    *tables_mocks.MockViewer
}

func newRouter(t *testing.T) (*echo.Echo, deps) {
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	d := deps{
		librarian: service_mocks.NewMockLibrarian(c),
		registry:  service_mocks.NewMockRegistry(c),
		source:    tables_mocks.NewMockSource(c),
		viewer:    tables_mocks.NewMockViewer(c),
	}
	h := handler.New(d.librarian, d.registry, d.source, zap.NewExample().Named("test"))
	return h.NewRouter(), d
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, http.NoBody)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	e, _ := newRouter(t)
	w := serve(e, http.MethodGet, "/manage/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestHandler_IssueBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(l *service_mocks.MockLibrarian)

	issue := func(result error) mockBehavior {
		return func(l *service_mocks.MockLibrarian) {
			l.EXPECT().IssueBook(gomock.Any(), gomock.Any(), int64(1), "+71234567890").
				DoAndReturn(func(ctx context.Context, ui controller.Interaction, _ int64, _ string) (model.Loan, error) {
					if result != nil {
						ui.Notify(ctx, controller.Notification{Level: controller.LevelError, Title: "Issue book", Message: errs.Message(result)})
						return model.Loan{}, result
					}
					if !ui.Confirm(ctx, `Issue "Dune" to Ivan Petrov?`) {
						return model.Loan{}, errs.ErrCanceled
					}
					return model.Loan{ID: 100, BookID: 1, ReaderID: 10, BookCode: "B1"}, nil
				})
		}
	}

	var tests = []struct {
		name         string
		target       string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:         "ok",
			target:       "/api/v1/books/1/issue?confirm=true",
			body:         `{"phone":"+71234567890"}`,
			mockBehavior: issue(nil),
			expectedCode: http.StatusCreated,
			expectedBody: `"bookCode":"B1"`,
		},
		{
			name:         "needs confirmation",
			target:       "/api/v1/books/1/issue",
			body:         `{"phone":"+71234567890"}`,
			mockBehavior: issue(nil),
			expectedCode: http.StatusPreconditionRequired,
			expectedBody: `{"message":"confirmation required","prompt":"Issue \"Dune\" to Ivan Petrov?"}`,
		},
		{
			name:         "no copies",
			target:       "/api/v1/books/1/issue?confirm=true",
			body:         `{"phone":"+71234567890"}`,
			mockBehavior: issue(errs.Precondition("no copies of %q are available", "Dune")),
			expectedCode: http.StatusConflict,
			expectedBody: `{"message":"no copies of \"Dune\" are available","notifications":[{"level":"error","title":"Issue book","message":"no copies of \"Dune\" are available"}]}`,
		},
		{
			name:         "database down",
			target:       "/api/v1/books/1/issue?confirm=true",
			body:         `{"phone":"+71234567890"}`,
			mockBehavior: issue(errs.Infrastructure(errors.New("dial tcp"))),
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `"message":"database is unavailable"`,
		},
		{
			name:         "bad id",
			target:       "/api/v1/books/x/issue",
			body:         `{"phone":"+71234567890"}`,
			mockBehavior: func(l *service_mocks.MockLibrarian) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"invalid id"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, d := newRouter(t)
			tt.mockBehavior(d.librarian)

			w := serve(e, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.expectedCode, w.Code)
			require.Contains(t, strings.Trim(w.Body.String(), "\n"), tt.expectedBody)
		})
	}
}

func TestHandler_SaveBook(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.librarian.EXPECT().SaveBook(gomock.Any(), gomock.Any(), model.BookForm{Code: "B1", Name: "Dune", Author: "Herbert", Count: "2"}).
			Return(model.Book{ID: 1, Code: "B1", Name: "Dune", Author: "Herbert", Count: 2}, nil)

		w := serve(e, http.MethodPost, "/api/v1/books", `{"code":"B1","name":"Dune","author":"Herbert","count":2}`)
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, `{"result":{"id":1,"code":"B1","name":"Dune","author":"Herbert","count":2,"takenCount":0}}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("count below taken", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.librarian.EXPECT().SaveBook(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ controller.Interaction, form model.BookForm) (model.Book, error) {
				require.EqualValues(t, 7, form.ID)
				return model.Book{}, &errs.FieldValidationError{Field: "count", Reason: "is less than the number of issued copies (2)"}
			})

		w := serve(e, http.MethodPut, "/api/v1/books/7", `{"code":"B1","name":"Dune","author":"Herbert","count":1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, `{"message":"count: is less than the number of issued copies (2)"}`, strings.Trim(w.Body.String(), "\n"))
	})
}

func TestHandler_DeleteReader(t *testing.T) {
	t.Parallel()
	e, d := newRouter(t)
	d.librarian.EXPECT().DeleteReader(gomock.Any(), gomock.Any(), int64(10)).
		Return(errs.Precondition("Ivan Petrov still holds 1 book(s); return them first"))

	w := serve(e, http.MethodDelete, "/api/v1/readers/10?confirm=true", "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "still holds 1 book(s)")
}

func TestHandler_Tables(t *testing.T) {
	t.Parallel()
	snap := tables.Table{Kind: "book", Title: "Books", Columns: []string{"Code"}, Rows: []tables.Row{{Key: 1, Cells: []string{"B1"}}}, Generation: 3}

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.registry.EXPECT().Lookup(model.KindBook).Return(d.viewer, true)
		d.viewer.EXPECT().Snapshot().Return(snap)

		w := serve(e, http.MethodGet, "/api/v1/tables/books", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"rows":[{"key":1,"cells":["B1"]}]`)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		e, _ := newRouter(t)
		w := serve(e, http.MethodGet, "/api/v1/tables/genres", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("not open", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.registry.EXPECT().Lookup(model.KindHistory).Return(nil, false)
		w := serve(e, http.MethodGet, "/api/v1/tables/history", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("filter", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.registry.EXPECT().Lookup(model.KindBook).Return(d.viewer, true)
		gomock.InOrder(
			d.viewer.EXPECT().SetFilter("dune", "Total", true).Return(nil),
			d.registry.EXPECT().Refresh(gomock.Any(), model.KindBook).Return(nil),
			d.viewer.EXPECT().Snapshot().Return(snap),
		)

		w := serve(e, http.MethodPut, "/api/v1/tables/book", `{"search":"dune","sort":"Total","desc":true}`)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad sort", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.registry.EXPECT().Lookup(model.KindBook).Return(d.viewer, true)
		d.viewer.EXPECT().SetFilter("", "Genre", false).Return(&errs.FieldValidationError{Field: "sort", Reason: "unknown column Genre"})

		w := serve(e, http.MethodPut, "/api/v1/tables/book", `{"sort":"Genre"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("refresh all", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.registry.EXPECT().Refresh(gomock.Any()).Return(nil)

		w := serve(e, http.MethodPost, "/api/v1/tables/refresh", "")
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestHandler_ReaderLoans(t *testing.T) {
	t.Parallel()
	e, d := newRouter(t)
	d.source.EXPECT().Load(gomock.Any(), model.KindLoan, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.Kind, opts model.ListOptions) ([]model.Row, error) {
			sql, args, err := opts.Where.ToSql()
			require.NoError(t, err)
			require.Equal(t, "l.reader_id = ?", sql)
			require.Equal(t, []interface{}{int64(10)}, args)
			return []model.Row{model.Loan{ID: 100, BookCode: "B1", BookName: "Dune", ReaderPhone: "+71234567890"}}, nil
		})

	w := serve(e, http.MethodGet, "/api/v1/readers/10/loans", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"title":"Books held by reader 10"`)
	require.Contains(t, w.Body.String(), `"key":100`)
}

func TestHandler_Dump(t *testing.T) {
	t.Parallel()

	t.Run("export", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.librarian.EXPECT().Export(gomock.Any(), true).
			Return(dump.File{Books: []dump.Book{{Code: "B1", Name: "Dune", Author: "Herbert", Count: 1}}, Readers: []dump.Reader{}}, nil)

		w := serve(e, http.MethodGet, "/api/v1/dump?history=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Header().Get(echo.HeaderContentDisposition), "library.json")
		require.Contains(t, w.Body.String(), "\n    \"books\": [")
	})

	t.Run("import", func(t *testing.T) {
		t.Parallel()
		e, d := newRouter(t)
		d.librarian.EXPECT().Import(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ui controller.Interaction, f dump.File) (dump.Stats, error) {
				require.Len(t, f.Books, 1)
				require.True(t, ui.Confirm(ctx, "Import?"))
				return dump.Stats{Books: 1}, nil
			})

		w := serve(e, http.MethodPost, "/api/v1/dump?confirm=1", `{"books":[{"code":"B1","name":"Dune","author":"Herbert","count":1}],"readers":[]}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"result":{"books":1,"readers":0,"loans":0,"events":0}}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		e, _ := newRouter(t)
		w := serve(e, http.MethodPost, "/api/v1/dump", `{"books":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Report(t *testing.T) {
	t.Parallel()
	e, d := newRouter(t)
	d.librarian.EXPECT().Report(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w io.Writer) error {
			_, err := w.Write([]byte("%PDF-1.3"))
			return err
		})

	w := serve(e, http.MethodGet, "/api/v1/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get(echo.HeaderContentType))
	require.Equal(t, "%PDF-1.3", w.Body.String())
}
