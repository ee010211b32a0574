package handler

import (
	"net/http"

	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateBook(c echo.Context) error {
	return h.saveBook(c, 0, http.StatusCreated)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	return h.saveBook(c, id, http.StatusOK)
}

func (h *Handler) saveBook(c echo.Context, id int64, code int) error {
	var form model.BookForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	form.ID = id
	ui := newInteraction(c)
	book, err := h.librarian.SaveBook(c.Request().Context(), ui, form)
	return h.respond(c, ui, code, book, err)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ui := newInteraction(c)
	err = h.librarian.DeleteBook(c.Request().Context(), ui, id)
	return h.respond(c, ui, http.StatusOK, nil, err)
}

func (h *Handler) IssueBook(c echo.Context) error {
	type Req struct {
		Phone string `json:"phone"`
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ui := newInteraction(c)
	loan, err := h.librarian.IssueBook(c.Request().Context(), ui, id, req.Phone)
	return h.respond(c, ui, http.StatusCreated, loan, err)
}

func (h *Handler) ReturnBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ui := newInteraction(c)
	err = h.librarian.ReturnBook(c.Request().Context(), ui, id)
	return h.respond(c, ui, http.StatusOK, nil, err)
}

func (h *Handler) WriteOff(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ui := newInteraction(c)
	err = h.librarian.WriteOff(c.Request().Context(), ui, id)
	return h.respond(c, ui, http.StatusOK, nil, err)
}

func (h *Handler) CreateReader(c echo.Context) error {
	return h.saveReader(c, 0, http.StatusCreated)
}

func (h *Handler) UpdateReader(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	return h.saveReader(c, id, http.StatusOK)
}

func (h *Handler) saveReader(c echo.Context, id int64, code int) error {
	var form model.ReaderForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	form.ID = id
	ui := newInteraction(c)
	reader, err := h.librarian.SaveReader(c.Request().Context(), ui, form)
	return h.respond(c, ui, code, reader, err)
}

func (h *Handler) DeleteReader(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ui := newInteraction(c)
	err = h.librarian.DeleteReader(c.Request().Context(), ui, id)
	return h.respond(c, ui, http.StatusOK, nil, err)
}
