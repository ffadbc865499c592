package response

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/pkg/logger"
)

var production atomic.Bool

// SetProduction hides stack traces and wrapped error text from error bodies.
func SetProduction(enabled bool) {
	production.Store(enabled)
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error logs err with the request context and writes {error, code, details?}.
func Error(c *gin.Context, err error) {
	appErr := ToAppError(err)

	ctx := c.Request.Context()
	fields := []zap.Field{
		zap.Int("status", appErr.Status),
		zap.String("code", appErr.Code),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(ctx, "Request failed", fields...)
	} else {
		logger.Warn(ctx, "Request rejected", fields...)
	}

	body := gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	if !production.Load() && appErr.Status >= http.StatusInternalServerError {
		body["stack"] = string(debug.Stack())
		if appErr.Err != nil {
			body["detail"] = appErr.Err.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.Status, body)
}

// ToAppError classifies any error into the public error vocabulary.
func ToAppError(err error) *domainerrors.AppError {
	if err == nil {
		return domainerrors.InternalError(errors.New("unknown error"))
	}
	if appErr, ok := domainerrors.As(err); ok {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeDuplicateEntry, "Duplicate entry", err)
	}
	if errors.Is(err, domainerrors.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.NewAppError(http.StatusNotFound, domainerrors.CodeNotFound, "Resource not found", err)
	}
	if isDatabaseError(err) {
		return domainerrors.DatabaseError(err)
	}
	return domainerrors.InternalError(err)
}

var gormErrors = []error{
	gorm.ErrInvalidTransaction,
	gorm.ErrNotImplemented,
	gorm.ErrMissingWhereClause,
	gorm.ErrUnsupportedRelation,
	gorm.ErrPrimaryKeyRequired,
	gorm.ErrModelValueRequired,
	gorm.ErrInvalidData,
	gorm.ErrUnsupportedDriver,
	gorm.ErrRegistered,
	gorm.ErrInvalidField,
	gorm.ErrEmptySlice,
	gorm.ErrDryRunModeUnsupported,
	gorm.ErrInvalidDB,
	gorm.ErrInvalidValue,
	gorm.ErrInvalidValueOfLength,
	gorm.ErrForeignKeyViolated,
	gorm.ErrCheckConstraintViolated,
	sql.ErrConnDone,
	sql.ErrTxDone,
	driver.ErrBadConn,
}

func isDatabaseError(err error) bool {
	for _, target := range gormErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	var stateErr interface{ SQLState() string }
	return errors.As(err, &stateErr)
}
