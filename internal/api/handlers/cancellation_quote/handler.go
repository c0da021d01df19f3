package cancellation_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	cancellationQuote "github.com/m04kA/SMC-VenueService/internal/usecase/cancellation_quote"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgBookingNotFound  = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgNotCancellable   = "бронирование уже нельзя отменить"
)

type Handler struct {
	useCase CancellationQuoteUseCase
	logger  Logger
}

func NewHandler(useCase CancellationQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/cancellation-quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/cancellation-quote - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/cancellation-quote - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancellationQuote.Request{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancellationQuote.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/cancellation-quote - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancellationQuote.ErrPermissionDenied):
			h.logger.Warn("GET /bookings/{id}/cancellation-quote - Permission denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancellationQuote.ErrNotCancellable):
			h.logger.Warn("GET /bookings/{id}/cancellation-quote - Not cancellable: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgNotCancellable)

		case errors.Is(err, cancellationQuote.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id}/cancellation-quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("GET /bookings/{id}/cancellation-quote - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/cancellation-quote - Quote computed: booking_id=%d, fee=%.2f",
		bookingID, result.Fee)
	handlers.RespondJSON(w, http.StatusOK, result)
}
