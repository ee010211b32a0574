package handler

import (
	"net/http"
	"strconv"

	md "github.com/Astemirdum/librarian/pkg/middleware"

	"github.com/Astemirdum/librarian/librarian/internal/tables"
	"github.com/Astemirdum/librarian/librarian/internal/validation"
	"github.com/Astemirdum/librarian/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	librarian Librarian
	registry  Registry
	source    tables.Source
	log       *zap.Logger
}

// New wires the desk API. source backs the ad-hoc loan views.
func New(librarian Librarian, registry Registry, source tables.Source, log *zap.Logger) *Handler {
	return &Handler{
		librarian: librarian,
		registry:  registry,
		source:    source,
		log:       log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator(validate.WithRule("phone", validation.IsPhoneNumber))
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/tables/:kind", h.GetTable)
	api.PUT("/tables/:kind", h.FilterTable)
	api.POST("/tables/refresh", h.RefreshTables)
	api.GET("/readers/:id/loans", h.ReaderLoans)
	api.GET("/books/:id/loans", h.BookLoans)

	api.POST("/books", h.CreateBook)
	api.PUT("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)
	api.POST("/books/:id/issue", h.IssueBook)
	api.POST("/loans/:id/return", h.ReturnBook)
	api.POST("/loans/:id/write-off", h.WriteOff)

	api.POST("/readers", h.CreateReader)
	api.PUT("/readers/:id", h.UpdateReader)
	api.DELETE("/readers/:id", h.DeleteReader)

	api.GET("/dump", h.Export)
	api.POST("/dump", h.Import)
	api.GET("/report", h.Report)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
