package handler

import (
	"fmt"
	"net/http"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/tables"
	sq "github.com/Masterminds/squirrel"
	"github.com/labstack/echo/v4"
)

func (h *Handler) lookup(c echo.Context) (tables.Viewer, model.Kind, error) {
	kind, ok := model.ParseKind(c.Param("kind"))
	if !ok {
		return nil, 0, echo.NewHTTPError(http.StatusNotFound, "unknown table "+c.Param("kind"))
	}
	v, ok := h.registry.Lookup(kind)
	if !ok {
		return nil, 0, echo.NewHTTPError(http.StatusNotFound, "table "+kind.String()+" is not open")
	}
	return v, kind, nil
}

func (h *Handler) GetTable(c echo.Context) error {
	v, _, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v.Snapshot())
}

func (h *Handler) FilterTable(c echo.Context) error {
	type Req struct {
		Search string `json:"search" validate:"max=128"`
		Sort   string `json:"sort"`
		Desc   bool   `json:"desc"`
	}
	v, kind, err := h.lookup(c)
	if err != nil {
		return err
	}
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := v.SetFilter(req.Search, req.Sort, req.Desc); err != nil {
		return echo.NewHTTPError(statusOf(err), errs.Message(err))
	}
	if err := h.registry.Refresh(c.Request().Context(), kind); err != nil {
		return echo.NewHTTPError(statusOf(err), errs.Message(err))
	}
	return c.JSON(http.StatusOK, v.Snapshot())
}

func (h *Handler) RefreshTables(c echo.Context) error {
	if err := h.registry.Refresh(c.Request().Context()); err != nil {
		return echo.NewHTTPError(statusOf(err), errs.Message(err))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ReaderLoans(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	return h.adHocLoans(c, model.LoansOfReader(id), fmt.Sprintf("Books held by reader %d", id))
}

func (h *Handler) BookLoans(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	return h.adHocLoans(c, model.LoansOfBook(id), fmt.Sprintf("Readers holding book %d", id))
}

// adHocLoans builds a throwaway loan view; it is never registered.
func (h *Handler) adHocLoans(c echo.Context, filter sq.Sqlizer, title string) error {
	v, err := tables.NewView(model.KindLoan, h.source, tables.WithDefaultFilter(filter), tables.WithTitle(title))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := v.SetFilter(c.QueryParam("search"), c.QueryParam("sort"), c.QueryParam("desc") == "true"); err != nil {
		return echo.NewHTTPError(statusOf(err), errs.Message(err))
	}
	if err := v.Refresh(c.Request().Context()); err != nil {
		return echo.NewHTTPError(statusOf(err), errs.Message(err))
	}
	return c.JSON(http.StatusOK, v.Snapshot())
}
