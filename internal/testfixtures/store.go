package testfixtures

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Store in-memory хранилище с семантикой транзакций для тестов use case'ов.
// Данные хранятся по значению, наружу отдаются только копии.
type Store struct {
	mu   sync.Mutex // защищает data
	txMu sync.Mutex // одна транзакция за раз, аналог блокировки строк
	data tables

	lockedCourts [][]int64
	commits      int
	rollbacks    int
}

type tables struct {
	nextID     int64
	facilities map[int64]domain.Facility
	courts     map[int64]domain.Court
	bookings   map[int64]domain.Booking
	equipment  map[int64]domain.Equipment
	requests   map[int64]domain.EquipmentRequest
	items      map[int64]domain.EquipmentRequestItem
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{data: tables{
		facilities: map[int64]domain.Facility{},
		courts:     map[int64]domain.Court{},
		bookings:   map[int64]domain.Booking{},
		equipment:  map[int64]domain.Equipment{},
		requests:   map[int64]domain.EquipmentRequest{},
		items:      map[int64]domain.EquipmentRequestItem{},
	}}
}

func (t tables) clone() tables {
	c := tables{
		nextID:     t.nextID,
		facilities: make(map[int64]domain.Facility, len(t.facilities)),
		courts:     make(map[int64]domain.Court, len(t.courts)),
		bookings:   make(map[int64]domain.Booking, len(t.bookings)),
		equipment:  make(map[int64]domain.Equipment, len(t.equipment)),
		requests:   make(map[int64]domain.EquipmentRequest, len(t.requests)),
		items:      make(map[int64]domain.EquipmentRequestItem, len(t.items)),
	}
	for k, v := range t.facilities {
		c.facilities[k] = v
	}
	for k, v := range t.courts {
		c.courts[k] = v
	}
	for k, v := range t.bookings {
		c.bookings[k] = v
	}
	for k, v := range t.equipment {
		c.equipment[k] = v
	}
	for k, v := range t.requests {
		c.requests[k] = v
	}
	for k, v := range t.items {
		c.items[k] = v
	}
	return c
}

func (s *Store) snapshot() tables {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	s.data = t
	s.rollbacks++
	s.mu.Unlock()
}

func (s *Store) committed() {
	s.mu.Lock()
	s.commits++
	s.mu.Unlock()
}

// next выдаёт следующий ID; вызывать под s.mu
func (s *Store) next() int64 {
	s.data.nextID++
	return s.data.nextID
}

// SeedFacility сохраняет площадку и активные корты с указанными именами
func (s *Store) SeedFacility(f domain.Facility, courtNames ...string) (*domain.Facility, []*domain.Court) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.next()
	f.CourtCount = len(courtNames)
	s.data.facilities[f.ID] = f

	courts := make([]*domain.Court, 0, len(courtNames))
	for _, name := range courtNames {
		c := domain.Court{ID: s.next(), FacilityID: f.ID, Name: name, IsActive: true}
		s.data.courts[c.ID] = c
		courts = append(courts, &c)
	}

	return &f, courts
}

// SeedCourt сохраняет корт
func (s *Store) SeedCourt(c domain.Court) *domain.Court {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.next()
	s.data.courts[c.ID] = c
	return &c
}

// SeedBooking сохраняет бронирование как есть
func (s *Store) SeedBooking(b domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.next()
	if b.Status == "" {
		b.Status = domain.StatusConfirmed
	}
	s.data.bookings[b.ID] = b
	return &b
}

// SeedEquipment сохраняет инвентарь с qtyTotal = qtyAvailable = qty
func (s *Store) SeedEquipment(facilityID int64, name string, qty int) *domain.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := domain.Equipment{ID: s.next(), FacilityID: facilityID, Name: name, QtyTotal: qty, QtyAvailable: qty}
	s.data.equipment[e.ID] = e
	return &e
}

// SeedRequest сохраняет заявку и её строки
func (s *Store) SeedRequest(r domain.EquipmentRequest, items ...domain.EquipmentRequestItem) (*domain.EquipmentRequest, []*domain.EquipmentRequestItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.next()
	if r.Status == "" {
		r.Status = domain.RequestPending
	}
	s.data.requests[r.ID] = r

	saved := make([]*domain.EquipmentRequestItem, 0, len(items))
	for _, item := range items {
		item.ID = s.next()
		item.RequestID = r.ID
		s.data.items[item.ID] = item
		saved = append(saved, &item)
	}

	return &r, saved
}

// Booking возвращает копию бронирования или nil
func (s *Store) Booking(id int64) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data.bookings[id]
	if !ok {
		return nil
	}
	return &b
}

// Bookings возвращает копии всех бронирований
func (s *Store) Bookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, 0, len(s.data.bookings))
	for _, b := range s.data.bookings {
		b := b
		result = append(result, &b)
	}
	sortBookings(result)
	return result
}

// Equipment возвращает копию инвентаря или nil
func (s *Store) Equipment(id int64) *domain.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data.equipment[id]
	if !ok {
		return nil
	}
	return &e
}

// Request возвращает копию заявки или nil
func (s *Store) Request(id int64) *domain.EquipmentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.requests[id]
	if !ok {
		return nil
	}
	return &r
}

// RequestsOfBooking возвращает копии заявок бронирования
func (s *Store) RequestsOfBooking(bookingID int64) []*domain.EquipmentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.EquipmentRequest, 0)
	for _, r := range s.data.requests {
		if r.BookingID == bookingID {
			r := r
			result = append(result, &r)
		}
	}
	sortByID(result, func(r *domain.EquipmentRequest) int64 { return r.ID })
	return result
}

// Items возвращает копии строк заявки
func (s *Store) Items(requestID int64) []*domain.EquipmentRequestItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsOf(requestID)
}

// Item возвращает копию строки заявки или nil
func (s *Store) Item(id int64) *domain.EquipmentRequestItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.data.items[id]
	if !ok {
		return nil
	}
	return &item
}

// LockedCourts возвращает наборы кортов, заблокированных через LockByIDs
func (s *Store) LockedCourts() [][]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]int64(nil), s.lockedCourts...)
}

// Rollbacks количество откатанных транзакций
func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

func (s *Store) itemsOf(requestID int64) []*domain.EquipmentRequestItem {
	result := make([]*domain.EquipmentRequestItem, 0)
	for _, item := range s.data.items {
		if item.RequestID == requestID {
			item := item
			result = append(result, &item)
		}
	}
	sortByID(result, func(i *domain.EquipmentRequestItem) int64 { return i.ID })
	return result
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
