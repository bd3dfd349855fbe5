package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/evergreen-ci/breakout"
	"github.com/evergreen-ci/gimlet"
)

///////////////////////////////////////////////////////////////////////////////
//
// GET /status

type StatusResponse struct {
	Revision string  `json:"revision"`
	Uptime   float64 `json:"uptime_secs"`
}

type statusHandler struct {
	startedAt time.Time
}

func makeStatusHandler(startedAt time.Time) gimlet.RouteHandler {
	return &statusHandler{startedAt: startedAt}
}

func (h *statusHandler) Factory() gimlet.RouteHandler {
	return &statusHandler{startedAt: h.startedAt}
}

func (h *statusHandler) Parse(_ context.Context, _ *http.Request) error { return nil }

func (h *statusHandler) Run(_ context.Context) gimlet.Responder {
	return gimlet.NewJSONResponse(StatusResponse{
		Revision: breakout.BuildRevision,
		Uptime:   time.Since(h.startedAt).Seconds(),
	})
}
