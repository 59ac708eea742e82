package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities"
	"github.com/m04kA/SMC-CourtBooking/internal/service/facilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "требуется авторизация"
	msgForbidden          = "доступно только администраторам"
	msgInvalidFacility    = "некорректные параметры площадки"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	facility, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrForbidden):
			h.logger.Warn("POST /facilities - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Invalid facility: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFacility)

		case errors.Is(err, facilities.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgMissingActor)

		default:
			h.logger.Error("POST /facilities - Failed to create facility: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Facility created successfully: facility_id=%d, user_id=%d", facility.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, facility)
}
