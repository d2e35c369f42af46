package handler

import (
	"net/http"
	"strconv"

	"marketplace-service/internal/apperror"
	"marketplace-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError writes err as {"error": message} with its mapped status. Internal causes
// are logged, never returned.
func respondError(c echo.Context, err error) error {
	status := apperror.HTTPStatus(err)
	log := logger.FromEcho(c)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		log.Info("Request rejected", zap.Int("status", status), zap.String("reason", apperror.Message(err)))
	}
	return c.JSON(status, echo.Map{"error": apperror.Message(err)})
}

// bindJSON decodes the body and runs the struct tag checks
func bindJSON(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		logger.FromEcho(c).Warn("Invalid request data", zap.Error(err))
		return apperror.Validation("invalid request data")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(dst)
}

func uintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.Validation("invalid " + name)
	}
	return uint(v), nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NotFound("store not found")
	}
	return id, nil
}

func success(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
