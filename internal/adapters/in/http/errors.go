package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorNameHeader = "X-Actor-Name"
)

// StatusOf maps an application error to the HTTP status it is reported with.
func StatusOf(err error) int {
	switch errs.ClassOf(err) {
	case errs.ClassInvalid:
		return http.StatusBadRequest
	case errs.ClassNotFound:
		return http.StatusNotFound
	case errs.ClassConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Any("error", err),
		)
		message = http.StatusText(status)
	}
	return ctx.JSON(status, Error{Code: errs.Code(err), Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: "bad_request", Message: message})
}

func actorFrom(ctx echo.Context) (kernel.Actor, error) {
	header := ctx.Request().Header
	return kernel.ActorFromString(header.Get(actorIDHeader), header.Get(actorNameHeader))
}

// HTTPErrorHandler renders echo errors, such as unknown routes or failed
// parameter binding, with the same body as application errors.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	_ = ctx.JSON(status, Error{Code: "http_" + strconv.Itoa(status), Message: message})
}
