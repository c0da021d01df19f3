package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/lifecycle"
	confirmBooking "github.com/m04kA/SMC-VenueService/internal/usecase/confirm_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgVenueNotFound      = "площадка не найдена"
	msgIllegalTransition  = "подтверждение недопустимо из текущего статуса"
	msgDepositRequired    = "для подтверждения требуется оплата депозита"
	msgRevalidationFailed = "интервал бронирования больше недоступен"
	msgVersionConflict    = "бронирование было изменено, повторите запрос"
)

// ConfirmBookingRequest HTTP request model (тело опционально)
type ConfirmBookingRequest struct {
	Note *string `json:"note,omitempty"`
}

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Note:      req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Venue not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, lifecycle.ErrDepositRequired):
			h.logger.Warn("POST /bookings/{id}/confirm - Deposit required: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgDepositRequired)

		case errors.Is(err, lifecycle.ErrRevalidationFailed):
			h.logger.Warn("POST /bookings/{id}/confirm - Revalidation failed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgRevalidationFailed)

		case errors.Is(err, lifecycle.ErrIllegalTransition), errors.Is(err, lifecycle.ErrBookingArchived):
			h.logger.Warn("POST /bookings/{id}/confirm - Illegal transition: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgIllegalTransition)

		case errors.Is(err, confirmBooking.ErrVersionConflict):
			h.logger.Warn("POST /bookings/{id}/confirm - Version conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
