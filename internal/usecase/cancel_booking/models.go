package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	Actor     *domain.Actor
	BookingID int64
}

// Response модель ответа с отменённым бронированием
type Response struct {
	ID          int64
	Status      string
	CancelledAt time.Time

	// ClosedRequests сколько заявок на инвентарь закрыто вместе с бронированием
	ClosedRequests int64
}
