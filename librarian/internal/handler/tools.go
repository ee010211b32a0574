package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/Astemirdum/librarian/librarian/internal/dump"
	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/labstack/echo/v4"
)

func (h *Handler) Export(c echo.Context) error {
	withHistory, _ := strconv.ParseBool(c.QueryParam("history"))
	f, err := h.librarian.Export(c.Request().Context(), withHistory)
	if err != nil {
		return echo.NewHTTPError(statusOf(err), errs.Message(err))
	}
	var buf bytes.Buffer
	if err := dump.Encode(&buf, f); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="library.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, buf.Bytes())
}

func (h *Handler) Import(c echo.Context) error {
	f, err := dump.Decode(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.Message(err))
	}
	ui := newInteraction(c)
	st, err := h.librarian.Import(c.Request().Context(), ui, f)
	return h.respond(c, ui, http.StatusOK, st, err)
}

func (h *Handler) Report(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.librarian.Report(c.Request().Context(), &buf); err != nil {
		return echo.NewHTTPError(statusOf(err), errs.Message(err))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="report.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
