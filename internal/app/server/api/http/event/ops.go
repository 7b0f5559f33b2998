package event

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "events-list",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "List events",
		Tags:        []string{"events"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "events-create",
		Method:      http.MethodPost,
		Path:        "/api/events",
		Summary:     "Create an event",
		Tags:        []string{"events"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "events-get",
		Method:      http.MethodGet,
		Path:        "/api/events/{id}",
		Summary:     "Get an event by id",
		Tags:        []string{"events"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) participantsOp() huma.Operation {
	return huma.Operation{
		OperationID: "events-participants",
		Method:      http.MethodGet,
		Path:        "/api/events/{id}/participants",
		Summary:     "List event participants in registration order",
		Tags:        []string{"events"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) joinOp() huma.Operation {
	return huma.Operation{
		OperationID: "events-join",
		Method:      http.MethodPost,
		Path:        "/api/events/{id}/join",
		Summary:     "Register the authenticated user for an event",
		Tags:        []string{"events"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) leaveOp() huma.Operation {
	return huma.Operation{
		OperationID: "events-leave",
		Method:      http.MethodDelete,
		Path:        "/api/events/{id}/participants/{userID}",
		Summary:     "Remove a registration",
		Tags:        []string{"events"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
