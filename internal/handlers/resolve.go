package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
	"github.com/sbilibin2017/qa-resolver/internal/middlewares"
	"github.com/sbilibin2017/qa-resolver/internal/models"
)

// Resolverer defines the interface that the resolver service must implement.
type Resolverer interface {
	Resolve(ctx context.Context, event models.ResolverEvent) (any, error)
}

// ResolveErrorResponse represents a propagated list-operation failure
// swagger:model ResolveErrorResponse
type ResolveErrorResponse struct {
	// Error message
	// default: operation failed
	Error string `json:"error"`
}

// NewResolveHandler returns an HTTP handler for resolver events.
// @Summary Resolve an operation
// @Description Routes a resolver event (operationName, arguments, identity) to its data-access operation. List failures are propagated as 500; mutation failures come back inside a failure envelope.
// @Tags resolver
// @Accept json
// @Produce json
// @Param event body models.ResolverEvent true "Resolver event"
// @Success 200 {object} any "Normalized rows, boolean, or envelope"
// @Failure 400 {object} handlers.ResolveErrorResponse "Malformed event"
// @Failure 500 {object} handlers.ResolveErrorResponse "List operation failure"
// @Router /resolve [post]
func NewResolveHandler(svc Resolverer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event models.ResolverEvent

		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ResolveErrorResponse{
				Error: "invalid resolver event",
			})
			return
		}

		// Events without an inline identity may still carry a bearer
		// token; the middleware puts its subject in the context.
		if event.Identity == nil {
			if sub, ok := middlewares.SubjectFromContext(r.Context()); ok {
				event.Identity = &models.Identity{Sub: sub}
			}
		}

		result, err := svc.Resolve(r.Context(), event)
		if err != nil {
			logger.Log.Errorw("list operation failed",
				"operation", event.OperationName,
				"err", err,
			)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ResolveErrorResponse{Error: err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
