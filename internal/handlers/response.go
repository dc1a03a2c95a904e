package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/shooty_game/internal/middleware"
	"github.com/mroshb/shooty_game/internal/services"
	"github.com/mroshb/shooty_game/pkg/errors"
	"github.com/mroshb/shooty_game/pkg/logger"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var statusByCode = map[string]int{
	errors.ErrCodeValidation:        http.StatusBadRequest,
	errors.ErrCodeSelfRequest:       http.StatusBadRequest,
	errors.ErrCodeUnauthorized:      http.StatusUnauthorized,
	errors.ErrCodeInsufficientFunds: http.StatusPaymentRequired,
	errors.ErrCodeForbidden:         http.StatusForbidden,
	errors.ErrCodeNotFound:          http.StatusNotFound,
	errors.ErrCodeDuplicateRequest:  http.StatusConflict,
	errors.ErrCodeAlreadyFriends:    http.StatusConflict,
	errors.ErrCodeAlreadyExists:     http.StatusConflict,
	errors.ErrCodeStoreConflict:     http.StatusConflict,
	errors.ErrCodeInvalidTransition: http.StatusConflict,
	errors.ErrCodeRateLimitExceeded: http.StatusTooManyRequests,
}

// HTTPStatus maps an error code to its HTTP status; unknown codes are 500.
func HTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.Wrap(err, errors.ErrCodeInternalError, "internal server error")
	}

	status := HTTPStatus(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.FullPath(), "code", appErr.Code, "error", err)
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Code: appErr.Code, Message: message})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, errors.New(errors.ErrCodeValidation, message))
}

func forbidden(c *gin.Context) {
	respondError(c, errors.New(errors.ErrCodeForbidden, "not allowed to access this resource"))
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

// requireUserAccess writes 403 unless the caller is userID or an admin.
func requireUserAccess(c *gin.Context, userID uint) (*services.Actor, bool) {
	actor := middleware.ActorFrom(c)
	if !actor.CanAccessUser(userID) {
		forbidden(c)
		return nil, false
	}
	return actor, true
}
