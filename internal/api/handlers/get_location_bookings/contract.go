package get_location_bookings

import (
	"context"

	bookingModels "github.com/planbay/scheduling-service/internal/service/bookings/models"
)

type BookingService interface {
	ListLocationBookings(ctx context.Context, req *bookingModels.ListLocationBookingsRequest) (*bookingModels.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
