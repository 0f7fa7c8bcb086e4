package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eod-extractor/internal/report"
	"eod-extractor/pkg/response"
)

// mapError translates use-case errors into HTTP responses. Unknown
// errors become an opaque 500, the detail stays in the log.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, report.ErrEmptyBody), errors.Is(err, report.ErrInvalidRange):
		response.Error(c, err, nil)
	case errors.Is(err, report.ErrNoMailSource):
		response.ErrorWithStatus(c, http.StatusServiceUnavailable, err.Error())
	default:
		response.InternalError(c)
	}
}
