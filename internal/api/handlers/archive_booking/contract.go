package archive_booking

import "context"

type BookingService interface {
	Archive(ctx context.Context, bookingID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
