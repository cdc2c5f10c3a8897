package httperr

import (
	"context"
	"errors"
	"net/http"

	"supplier-quotes/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusFor maps an outcome class to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrValidationFailure):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrQuoteNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errs.Is(err, errs.ErrQuoteNotAvailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ClassResponse builds the response for err's outcome class. Only 4xx
// responses carry the error text.
func ClassResponse(err error, fallback string) Response {
	resp := Response{Status: StatusFor(err)}
	switch {
	case resp.Status == http.StatusServiceUnavailable:
		resp.Error.Message = "Quote store not available, retry later"
	case resp.Status < http.StatusInternalServerError:
		resp.Error.Message = err.Error()
	case fallback != "":
		resp.Error.Message = fallback
	default:
		resp.Error.Message = "Internal server error"
	}
	return resp
}

// AbortWithClass records err and stops the chain. The response is written by
// middleware.ErrorHandler from err's outcome class.
func AbortWithClass(c *gin.Context, err error, fallback string) {
	if err == nil {
		panic("AbortWithClass: err cannot be nil")
	}
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePrivate,
		Meta: fallback,
	})
	c.Abort()
}
