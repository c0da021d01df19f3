package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-VenueService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotReschedulable   = "перенос недопустим из текущего статуса"
	msgCapacityExceeded   = "число гостей не подходит площадке"
	msgVenueUnavailable   = "площадка недоступна в выбранный интервал"
	msgVersionConflict    = "бронирование было изменено, повторите запрос"
	msgInvalidInput       = "некорректные данные переноса"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartTime     string  `json:"startTime"` // RFC3339
	EndTime       string  `json:"endTime"`   // RFC3339
	AttendeeCount *int    `json:"attendeeCount,omitempty"`
	Note          *string `json:"note,omitempty"`
}

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid end time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		BookingID:     bookingID,
		UserID:        userID,
		StartTime:     start,
		EndTime:       end,
		AttendeeCount: req.AttendeeCount,
		Note:          req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrPermissionDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Permission denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrCapacityExceeded):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Capacity exceeded: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, rescheduleBooking.ErrVenueUnavailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Venue unavailable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgVenueUnavailable)

		case errors.Is(err, rescheduleBooking.ErrVersionConflict):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Version conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
