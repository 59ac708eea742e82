package testfixtures

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipment"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/storage/equipmentrequest"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/storage/facility"
)

// Repositories набор in-memory репозиториев поверх одного Store.
// Методы повторяют репозитории из internal/infra/storage и возвращают те же ошибки.
type Repositories struct {
	Facilities *FacilityRepo
	Courts     *CourtRepo
	Bookings   *BookingRepo
	Equipment  *EquipmentRepo
	Requests   *RequestRepo
}

// NewRepositories создает репозитории для store
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Facilities: &FacilityRepo{s: store},
		Courts:     &CourtRepo{s: store},
		Bookings:   &BookingRepo{s: store},
		Equipment:  &EquipmentRepo{s: store},
		Requests:   &RequestRepo{s: store},
	}
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

func sortBookings(b []*domain.Booking) {
	sortByID(b, func(x *domain.Booking) int64 { return x.ID })
}

// FacilityRepo in-memory аналог facility.Repository
type FacilityRepo struct{ s *Store }

func (r *FacilityRepo) Create(_ context.Context, f *domain.Facility) (*domain.Facility, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := *f
	saved.ID = r.s.next()
	r.s.data.facilities[saved.ID] = saved
	f.ID = saved.ID
	return f, nil
}

func (r *FacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.data.facilities[id]
	if !ok {
		return nil, facility.ErrFacilityNotFound
	}
	return &f, nil
}

func (r *FacilityRepo) List(_ context.Context, onlyActive bool) ([]*domain.Facility, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Facility, 0)
	for _, f := range r.s.data.facilities {
		if onlyActive && !f.IsActive {
			continue
		}
		f := f
		result = append(result, &f)
	}
	sortByID(result, func(f *domain.Facility) int64 { return f.ID })
	return result, nil
}

func (r *FacilityRepo) GetLinkedCandidates(_ context.Context, target *domain.Facility) ([]*domain.Facility, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Facility, 0)
	for _, f := range r.s.data.facilities {
		f := f
		if f.ID == target.ID || f.SharesSport(target.SportType) || target.SharesSport(f.SportType) {
			result = append(result, &f)
		}
	}
	sortByID(result, func(f *domain.Facility) int64 { return f.ID })
	return result, nil
}

func (r *FacilityRepo) Update(_ context.Context, f *domain.Facility) (*domain.Facility, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.facilities[f.ID]; !ok {
		return nil, facility.ErrFacilityNotFound
	}
	r.s.data.facilities[f.ID] = *f
	return f, nil
}

func (r *FacilityRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.facilities[id]; !ok {
		return facility.ErrFacilityNotFound
	}
	delete(r.s.data.facilities, id)
	for cid, c := range r.s.data.courts {
		if c.FacilityID == id {
			delete(r.s.data.courts, cid)
		}
	}
	for eid, e := range r.s.data.equipment {
		if e.FacilityID == id {
			delete(r.s.data.equipment, eid)
		}
	}
	return nil
}

// CourtRepo in-memory аналог court.Repository
type CourtRepo struct{ s *Store }

func (r *CourtRepo) Create(_ context.Context, c *domain.Court) (*domain.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := *c
	saved.ID = r.s.next()
	r.s.data.courts[saved.ID] = saved
	c.ID = saved.ID
	return c, nil
}

func (r *CourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.data.courts[id]
	if !ok {
		return nil, court.ErrCourtNotFound
	}
	return &c, nil
}

func (r *CourtRepo) GetByFacility(_ context.Context, facilityID int64) ([]*domain.Court, error) {
	return r.filter(func(c domain.Court) bool { return c.FacilityID == facilityID }), nil
}

func (r *CourtRepo) GetActiveByFacilities(_ context.Context, facilityIDs []int64) ([]*domain.Court, error) {
	ids := make(map[int64]struct{}, len(facilityIDs))
	for _, id := range facilityIDs {
		ids[id] = struct{}{}
	}
	return r.filter(func(c domain.Court) bool {
		_, ok := ids[c.FacilityID]
		return ok && c.IsActive
	}), nil
}

// LockByIDs запоминает заблокированный набор; реальную сериализацию даёт TxManager
func (r *CourtRepo) LockByIDs(_ context.Context, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lockedCourts = append(r.s.lockedCourts, append([]int64(nil), ids...))
	return nil
}

func (r *CourtRepo) SetActive(_ context.Context, ids []int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		if c, ok := r.s.data.courts[id]; ok {
			c.IsActive = active
			r.s.data.courts[id] = c
		}
	}
	return nil
}

func (r *CourtRepo) filter(keep func(domain.Court) bool) []*domain.Court {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Court, 0)
	for _, c := range r.s.data.courts {
		if keep(c) {
			c := c
			result = append(result, &c)
		}
	}
	sortByID(result, func(c *domain.Court) int64 { return c.ID })
	return result
}

// BookingRepo in-memory аналог booking.Repository
type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := *b
	saved.ID = r.s.next()
	r.s.data.bookings[saved.ID] = saved
	return &saved, nil
}

func (r *BookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepo) FindActiveDuplicate(_ context.Context, userID, facilityID, courtID int64, start time.Time) (*domain.Booking, error) {
	found := r.filter(func(b domain.Booking) bool {
		return b.IsActive() && b.UserID == userID && b.FacilityID == facilityID &&
			b.CourtID == courtID && b.StartTime.Equal(start)
	})
	if len(found) == 0 {
		return nil, booking.ErrBookingNotFound
	}
	return found[0], nil
}

func (r *BookingRepo) GetActiveByCourts(_ context.Context, courtIDs []int64, from, to time.Time) ([]*domain.Booking, error) {
	ids := make(map[int64]struct{}, len(courtIDs))
	for _, id := range courtIDs {
		ids[id] = struct{}{}
	}
	return r.filter(func(b domain.Booking) bool {
		_, ok := ids[b.CourtID]
		return ok && b.IsActive() && b.StartTime.Before(to) && b.EndTime.After(from)
	}), nil
}

func (r *BookingRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Booking, error) {
	found := r.filter(func(b domain.Booking) bool { return b.UserID == userID })
	sort.SliceStable(found, func(i, j int) bool { return found[i].StartTime.After(found[j].StartTime) })
	return found, nil
}

func (r *BookingRepo) GetByFacility(_ context.Context, facilityID int64, from, to time.Time) ([]*domain.Booking, error) {
	found := r.filter(func(b domain.Booking) bool {
		return b.FacilityID == facilityID && !b.StartTime.Before(from) && b.StartTime.Before(to)
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].StartTime.Before(found[j].StartTime) })
	return found, nil
}

func (r *BookingRepo) CountUpcomingByUser(_ context.Context, userID int64, now time.Time) (int, error) {
	return len(r.filter(func(b domain.Booking) bool {
		return b.UserID == userID && b.IsActive() && b.EndTime.After(now)
	})), nil
}

func (r *BookingRepo) CountByUserInRange(_ context.Context, userID int64, from, to time.Time) (int, error) {
	return len(r.filter(func(b domain.Booking) bool {
		return b.UserID == userID && b.IsActive() && !b.StartTime.Before(from) && b.StartTime.Before(to)
	})), nil
}

func (r *BookingRepo) CountByFacility(_ context.Context, facilityID int64) (int, error) {
	return len(r.filter(func(b domain.Booking) bool { return b.FacilityID == facilityID })), nil
}

func (r *BookingRepo) UpdateSchedule(_ context.Context, id int64, start, end time.Time, status domain.BookingStatus) error {
	return r.update(id, func(b *domain.Booking) {
		b.StartTime = start
		b.EndTime = end
		b.Status = status
		b.ReminderSentAt = nil
	})
}

func (r *BookingRepo) Cancel(_ context.Context, id int64, cancelledAt time.Time) error {
	return r.update(id, func(b *domain.Booking) {
		b.Status = domain.StatusCancelled
		b.CancelledAt = ptrTime(cancelledAt)
	})
}

func (r *BookingRepo) update(id int64, fn func(b *domain.Booking)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	fn(&b)
	r.s.data.bookings[id] = b
	return nil
}

func (r *BookingRepo) filter(keep func(domain.Booking) bool) []*domain.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if keep(b) {
			b := b
			result = append(result, &b)
		}
	}
	sortBookings(result)
	return result
}

// EquipmentRepo in-memory аналог equipment.Repository
type EquipmentRepo struct{ s *Store }

func (r *EquipmentRepo) Create(_ context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := *e
	saved.ID = r.s.next()
	r.s.data.equipment[saved.ID] = saved
	return &saved, nil
}

func (r *EquipmentRepo) GetByFacility(_ context.Context, facilityID int64) ([]*domain.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Equipment, 0)
	for _, e := range r.s.data.equipment {
		if e.FacilityID == facilityID {
			e := e
			result = append(result, &e)
		}
	}
	sortByID(result, func(e *domain.Equipment) int64 { return e.ID })
	return result, nil
}

func (r *EquipmentRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Equipment, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.s.data.equipment[id]; ok {
			result = append(result, &e)
		}
	}
	sortByID(result, func(e *domain.Equipment) int64 { return e.ID })
	return result, nil
}

func (r *EquipmentRepo) LockByIDs(ctx context.Context, ids []int64) ([]*domain.Equipment, error) {
	return r.GetByIDs(ctx, ids)
}

func (r *EquipmentRepo) DecrementAvailable(_ context.Context, id int64, qty int) error {
	return r.update(id, func(e *domain.Equipment) error {
		if e.QtyAvailable < qty {
			return equipment.ErrInsufficientStock
		}
		e.QtyAvailable -= qty
		return nil
	})
}

func (r *EquipmentRepo) IncrementAvailable(_ context.Context, id int64, qty int) error {
	return r.update(id, func(e *domain.Equipment) error {
		e.QtyAvailable += qty
		return nil
	})
}

func (r *EquipmentRepo) DecrementTotal(_ context.Context, id int64, qty int) error {
	return r.update(id, func(e *domain.Equipment) error {
		if e.QtyTotal < qty {
			return equipment.ErrInsufficientStock
		}
		e.QtyTotal -= qty
		return nil
	})
}

func (r *EquipmentRepo) update(id int64, fn func(e *domain.Equipment) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.data.equipment[id]
	if !ok {
		return equipment.ErrEquipmentNotFound
	}
	if err := fn(&e); err != nil {
		return err
	}
	r.s.data.equipment[id] = e
	return nil
}

// RequestRepo in-memory аналог equipmentrequest.Repository
type RequestRepo struct{ s *Store }

func (r *RequestRepo) CreateRequest(_ context.Context, req *domain.EquipmentRequest) (*domain.EquipmentRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := *req
	saved.ID = r.s.next()
	r.s.data.requests[saved.ID] = saved
	return &saved, nil
}

func (r *RequestRepo) CreateItem(_ context.Context, item *domain.EquipmentRequestItem) (*domain.EquipmentRequestItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.requests[item.RequestID]; !ok {
		return nil, equipmentrequest.ErrRequestNotFound
	}
	saved := *item
	saved.ID = r.s.next()
	r.s.data.items[saved.ID] = saved
	return &saved, nil
}

func (r *RequestRepo) GetRequestByID(_ context.Context, id int64) (*domain.EquipmentRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.data.requests[id]
	if !ok {
		return nil, equipmentrequest.ErrRequestNotFound
	}
	return &req, nil
}

func (r *RequestRepo) GetRequestByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequest, error) {
	return r.GetRequestByID(ctx, id)
}

func (r *RequestRepo) GetRequestsByBooking(_ context.Context, bookingID int64) ([]*domain.EquipmentRequest, error) {
	return r.s.RequestsOfBooking(bookingID), nil
}

func (r *RequestRepo) GetItemsByRequest(_ context.Context, requestID int64) ([]*domain.EquipmentRequestItem, error) {
	return r.s.Items(requestID), nil
}

func (r *RequestRepo) GetItemByID(_ context.Context, id int64) (*domain.EquipmentRequestItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.data.items[id]
	if !ok {
		return nil, equipmentrequest.ErrItemNotFound
	}
	return &item, nil
}

func (r *RequestRepo) GetItemByIDForUpdate(ctx context.Context, id int64) (*domain.EquipmentRequestItem, error) {
	return r.GetItemByID(ctx, id)
}

func (r *RequestRepo) UpdateItemIssue(_ context.Context, id int64, qty int, issuedAt time.Time) error {
	return r.updateItem(id, func(item *domain.EquipmentRequestItem) {
		item.Qty = qty
		if item.IssuedAt == nil {
			item.IssuedAt = ptrTime(issuedAt)
		}
	})
}

func (r *RequestRepo) UpdateItemReturn(_ context.Context, upd *domain.EquipmentRequestItem) error {
	return r.updateItem(upd.ID, func(item *domain.EquipmentRequestItem) {
		item.QtyReturned = upd.QtyReturned
		item.Condition = upd.Condition
		item.Dismissed = upd.Dismissed
		item.DamageNotes = upd.DamageNotes
	})
}

func (r *RequestRepo) UpdateDecision(_ context.Context, id int64, status domain.RequestStatus, decidedBy int64, decidedAt time.Time) error {
	return r.updateRequest(id, func(req *domain.EquipmentRequest) {
		req.Status = status
		if req.DecidedBy == nil {
			req.DecidedBy = &decidedBy
		}
		if req.DecidedAt == nil {
			req.DecidedAt = ptrTime(decidedAt)
		}
	})
}

func (r *RequestRepo) MarkDone(_ context.Context, id int64, returnedAt *time.Time) error {
	return r.updateRequest(id, func(req *domain.EquipmentRequest) {
		req.Status = domain.RequestDone
		req.ReturnedAt = returnedAt
	})
}

func (r *RequestRepo) CloseOpenByBooking(_ context.Context, bookingID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var closed int64
	for id, req := range r.s.data.requests {
		if req.BookingID == bookingID && req.IsOpen() {
			req.Status = domain.RequestDone
			r.s.data.requests[id] = req
			closed++
		}
	}
	return closed, nil
}

func (r *RequestRepo) updateRequest(id int64, fn func(req *domain.EquipmentRequest)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.data.requests[id]
	if !ok {
		return equipmentrequest.ErrRequestNotFound
	}
	fn(&req)
	r.s.data.requests[id] = req
	return nil
}

func (r *RequestRepo) updateItem(id int64, fn func(item *domain.EquipmentRequestItem)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.data.items[id]
	if !ok {
		return equipmentrequest.ErrItemNotFound
	}
	fn(&item)
	r.s.data.items[id] = item
	return nil
}
