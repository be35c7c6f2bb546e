package get_booking_by_reference

import (
	"context"

	"github.com/google/uuid"

	bookingModels "github.com/planbay/scheduling-service/internal/service/bookings/models"
)

type BookingService interface {
	GetByReference(ctx context.Context, orgID int64, reference uuid.UUID) (*bookingModels.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
