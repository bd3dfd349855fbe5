package rest

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/breakout/edm"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

func readRequest(ctx context.Context, r *http.Request, route string, out interface{}) error {
	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, out); err != nil {
		grip.Debug(message.WrapError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  http.MethodPost,
			"route":   route,
		}))
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "problem reading request body").Error(),
		}
	}

	return nil
}

func detectionErrorResponder(ctx context.Context, err error, route string) gimlet.Responder {
	if edm.IsParameterError(err) {
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		})
	}

	grip.Error(message.WrapError(err, message.Fields{
		"request": gimlet.GetRequestID(ctx),
		"method":  http.MethodPost,
		"route":   route,
	}))
	return gimlet.MakeJSONInternalErrorResponder(err)
}

///////////////////////////////////////////////////////////////////////////////
//
// POST /breakouts/amoc

type AMOCRequest struct {
	Series  []float64       `json:"series"`
	Options edm.AMOCOptions `json:"options"`
}

type AMOCResponse struct {
	Found bool `json:"found"`
	Index int  `json:"index,omitempty"`
}

type amocHandler struct {
	req AMOCRequest
}

func makeAMOCHandler() gimlet.RouteHandler {
	return &amocHandler{}
}

// Factory returns a handler with the default options, which fields missing
// from the request body leave in place.
func (h *amocHandler) Factory() gimlet.RouteHandler {
	return &amocHandler{
		req: AMOCRequest{Options: edm.DefaultAMOCOptions()},
	}
}

func (h *amocHandler) Parse(ctx context.Context, r *http.Request) error {
	return readRequest(ctx, r, "/breakouts/amoc", &h.req)
}

func (h *amocHandler) Run(ctx context.Context) gimlet.Responder {
	index, found, err := edm.AMOC(h.req.Series, h.req.Options)
	if err != nil {
		return detectionErrorResponder(ctx, err, "/breakouts/amoc")
	}

	return gimlet.NewJSONResponse(AMOCResponse{Found: found, Index: index})
}

///////////////////////////////////////////////////////////////////////////////
//
// POST /breakouts/multi

type MultiRequest struct {
	Series  []float64        `json:"series"`
	Options edm.MultiOptions `json:"options"`
}

type MultiResponse struct {
	Breakouts []int `json:"breakouts"`
}

type multiHandler struct {
	req MultiRequest
}

func makeMultiHandler() gimlet.RouteHandler {
	return &multiHandler{}
}

func (h *multiHandler) Factory() gimlet.RouteHandler {
	return &multiHandler{
		req: MultiRequest{Options: edm.DefaultMultiOptions()},
	}
}

func (h *multiHandler) Parse(ctx context.Context, r *http.Request) error {
	return readRequest(ctx, r, "/breakouts/multi", &h.req)
}

func (h *multiHandler) Run(ctx context.Context) gimlet.Responder {
	breakouts, err := edm.Multi(h.req.Series, h.req.Options)
	if err != nil {
		return detectionErrorResponder(ctx, err, "/breakouts/multi")
	}
	if breakouts == nil {
		breakouts = []int{}
	}

	return gimlet.NewJSONResponse(MultiResponse{Breakouts: breakouts})
}
