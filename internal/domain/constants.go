package domain

import (
	"fmt"
	"time"
)

// Scheduling constants
const (
	BookingSlotMinutes = 60 // гранулярность слотов при создании бронирования
	LegacySlotMinutes  = 30 // гранулярность для старых экранов отображения

	// ModificationWindow перенос и отмена закрыты, если до начала осталось
	// ModificationWindow или меньше
	ModificationWindow = 30 * time.Minute

	DefaultTimezoneOffsetHours = 8
)

// Business validation constants
const (
	MaxCourtsPerFacility = 50
	MaxFacilityNameLen   = 200
	MaxRules             = 50
	MaxDamageNotesLength = 500
	MaxEquipmentQty      = 10000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, которые занимают корт
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusRescheduled,
}

// OpenRequestStatuses статусы заявок на инвентарь, которые ещё в работе
var OpenRequestStatuses = []RequestStatus{
	RequestPending,
	RequestApproved,
}

// LocalZone возвращает фиксированный часовой пояс площадки
func LocalZone(offsetHours int) *time.Location {
	if offsetHours == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}
