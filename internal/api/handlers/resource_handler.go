package handlers

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/isdelr/watchlist/internal/models"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/isdelr/watchlist/internal/view"
	"github.com/rs/zerolog/log"
)

// Publisher fans a change out to live subscribers.
type Publisher interface {
	Publish(action string, payload interface{})
}

// ResourceHandler handles the test-rig resource API. It has no authentication.
type ResourceHandler struct {
	service   services.ResourceServiceProvider
	publisher Publisher
}

// NewResourceHandler creates a new ResourceHandler. publisher may be nil.
func NewResourceHandler(service services.ResourceServiceProvider, publisher Publisher) *ResourceHandler {
	return &ResourceHandler{service: service, publisher: publisher}
}

// ResourcePayload is the JSON body of POST /resource. Every field is optional.
type ResourcePayload struct {
	ResourceName *string `json:"resource_name"`
	Status       *string `json:"status"`
	Description  *string `json:"description"`
	ResourceType *string `json:"resource_type"`
}

// Ping is a liveness check.
func (h *ResourceHandler) Ping(w http.ResponseWriter, r *http.Request) {
	view.WriteJSON(w, http.StatusOK, "pong!")
}

// GetAll handles the request to get all resources.
func (h *ResourceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.GetAllResources()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve resources")
		serverError(w, "Failed to retrieve resources")
		return
	}

	view.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"resources": resources,
	})
}

// Create stores a resource from the request body without validating it.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload ResourcePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resource, err := h.service.CreateResource(models.Resource{
		ResourceName: payload.ResourceName,
		Status:       payload.Status,
		Description:  payload.Description,
		ResourceType: payload.ResourceType,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create resource")
		serverError(w, "Failed to create resource")
		return
	}

	if h.publisher != nil {
		h.publisher.Publish("resource.created", resource)
	}

	view.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Resource added!",
	})
}
