package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TripPlanner/config"
	"TripPlanner/pkg/response"
)

// Healthz
// GET /healthz
func Healthz(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, map[string]string{
		"status":  "ok",
		"service": config.Cfg.ServiceName,
		"version": config.Cfg.ServiceVer,
	})
}
