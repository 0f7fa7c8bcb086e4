package httpserver

import (
	"context"

	"eod-extractor/internal/middleware"
	reportHTTP "eod-extractor/internal/report/delivery/http"
)

// registerDomainRoutes mounts every domain under /api/v1.
//
// Pattern to follow when adding a new domain:
//  1. Build the handler chain in cmd/api (repository, usecase, handler)
//  2. Inject the handler through Config
//  3. Register its routes here from the delivery package
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")

	reportHTTP.RegisterRoutes(api, srv.reportHandler, mw)
	srv.l.Infof(ctx, "Report domain registered at /api/v1/extractions")

	return nil
}
