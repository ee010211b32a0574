package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Astemirdum/librarian/librarian/internal/controller"
	"github.com/Astemirdum/librarian/librarian/internal/errs"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// requestInteraction answers prompts from the ?confirm query flag and
// collects notifications for the response.
type requestInteraction struct {
	confirmed bool
	prompt    string
	notes     []controller.Notification
}

func newInteraction(c echo.Context) *requestInteraction {
	ok, _ := strconv.ParseBool(c.QueryParam("confirm"))
	return &requestInteraction{confirmed: ok}
}

func (i *requestInteraction) Confirm(_ context.Context, prompt string) bool {
	i.prompt = prompt
	return i.confirmed
}

func (i *requestInteraction) Notify(_ context.Context, n controller.Notification) {
	i.notes = append(i.notes, n)
}

type Response struct {
	Result        interface{}               `json:"result,omitempty"`
	Notifications []controller.Notification `json:"notifications,omitempty"`
}

type ErrorResponse struct {
	Message       string                    `json:"message"`
	Prompt        string                    `json:"prompt,omitempty"`
	Notifications []controller.Notification `json:"notifications,omitempty"`
}

func (h *Handler) respond(c echo.Context, ui *requestInteraction, code int, result interface{}, err error) error {
	if err != nil {
		status := statusOf(err)
		resp := ErrorResponse{Message: errs.Message(err), Notifications: ui.notes}
		if status == http.StatusPreconditionRequired {
			resp.Message = "confirmation required"
			resp.Prompt = ui.prompt
		}
		if status >= http.StatusInternalServerError {
			h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.JSON(status, resp)
	}
	return c.JSON(code, Response{Result: result, Notifications: ui.notes})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrCanceled):
		return http.StatusPreconditionRequired
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPrecondition), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInfrastructure):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
