package return_equipment

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модель запроса на возврат по строке заявки
type Request struct {
	Actor     *domain.Actor
	ItemID    int64
	Qty       int
	Condition string  // good | damaged | lost | not_returned
	Notes     *string // заметки о повреждении
	Dismiss   bool    // списать недостачу, только для not_returned
}

// Response модель ответа после возврата
type Response struct {
	ItemID      int64
	RequestID   int64
	EquipmentID int64
	Qty         int
	QtyReturned int
	Condition   string // итоговое состояние строки, lost сохраняется
	Dismissed   bool

	RequestStatus string
	ReturnedAt    *time.Time // проставляется, когда заявка закрыта полностью
}
