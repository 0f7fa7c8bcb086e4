package http

import (
	"github.com/gin-gonic/gin"

	"eod-extractor/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Parse is open to any caller behind the rate limit; Run reaches into
// the configured mailbox and requires auth.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	extractions := rg.Group("/extractions")
	{
		extractions.POST("/parse", mw.RateLimit(), h.Parse)
		extractions.POST("/run", mw.Auth(), mw.RateLimit(), h.Run)
	}
}
