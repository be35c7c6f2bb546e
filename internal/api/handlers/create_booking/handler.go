package create_booking

import (
	"errors"
	"net/http"

	"github.com/planbay/scheduling-service/internal/api/handlers"
	"github.com/planbay/scheduling-service/internal/api/middleware"
	requestBooking "github.com/planbay/scheduling-service/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid booking date or time, expected YYYY-MM-DD and HH:MM"
	msgCapacityExceeded   = "capacity exceeded"
	msgLocationClosed     = "location closed"
	msgResourceInactive   = "resource inactive"
	msgResourceNotFound   = "resource not found"
	msgLocationNotFound   = "location not found"
	msgInvalidBookingDate = "booking date is in the past"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	orgID := middleware.OrgID(r.Context())
	userID := middleware.UserID(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(orgID, userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: org_id=%d, location_id=%d", orgID, req.LocationID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, requestBooking.ErrLocationClosed):
			h.logger.Warn("POST /bookings - Location closed: org_id=%d, location_id=%d", orgID, req.LocationID)
			handlers.RespondError(w, http.StatusConflict, msgLocationClosed)

		case errors.Is(err, requestBooking.ErrResourceInactive):
			h.logger.Warn("POST /bookings - Resource inactive: org_id=%d, location_id=%d", orgID, req.LocationID)
			handlers.RespondError(w, http.StatusConflict, msgResourceInactive)

		case errors.Is(err, requestBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: org_id=%d, location_id=%d", orgID, req.LocationID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, requestBooking.ErrLocationNotFound):
			h.logger.Warn("POST /bookings - Location not found: org_id=%d, location_id=%d", orgID, req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, requestBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: org_id=%d, location_id=%d", orgID, req.LocationID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: org_id=%d, location_id=%d, error=%v",
				orgID, req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, org_id=%d, resource_id=%d",
		result.ID, orgID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
