package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// CreateFacilityRequest запрос на создание площадки
type CreateFacilityRequest struct {
	Name         string   `json:"name"`
	SportType    string   `json:"sportType"`
	IsActive     *bool    `json:"isActive,omitempty"` // по умолчанию true
	OpenTime     string   `json:"openTime"`           // HH:MM
	CloseTime    string   `json:"closeTime"`          // HH:MM
	SharedSports []string `json:"sharedSports,omitempty"`
	IsMultiSport bool     `json:"isMultiSport"`
	Rules        []string `json:"rules,omitempty"`
	CourtCount   int      `json:"courtCount"`
}

// UpdateFacilityRequest запрос на обновление площадки
// Все поля опциональны - обновляются только переданные значения
type UpdateFacilityRequest struct {
	Name         *string   `json:"name,omitempty"`
	SportType    *string   `json:"sportType,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
	OpenTime     *string   `json:"openTime,omitempty"`
	CloseTime    *string   `json:"closeTime,omitempty"`
	SharedSports *[]string `json:"sharedSports,omitempty"`
	IsMultiSport *bool     `json:"isMultiSport,omitempty"`
	Rules        *[]string `json:"rules,omitempty"`
	CourtCount   *int      `json:"courtCount,omitempty"`
}

// AddEquipmentRequest запрос на добавление инвентаря
type AddEquipmentRequest struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Response модели

// CourtResponse корт площадки
type CourtResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// FacilityResponse ответ с данными площадки
type FacilityResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SportType    string          `json:"sportType"`
	IsActive     bool            `json:"isActive"`
	OpenTime     string          `json:"openTime"`
	CloseTime    string          `json:"closeTime"`
	SharedSports []string        `json:"sharedSports"`
	IsMultiSport bool            `json:"isMultiSport"`
	Rules        []string        `json:"rules"`
	CourtCount   int             `json:"courtCount"`
	Courts       []CourtResponse `json:"courts"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// EquipmentResponse ответ с данными инвентаря
type EquipmentResponse struct {
	ID           int64  `json:"id"`
	FacilityID   int64  `json:"facilityId"`
	Name         string `json:"name"`
	QtyTotal     int    `json:"qtyTotal"`
	QtyAvailable int    `json:"qtyAvailable"`
}

// EquipmentListResponse ответ со списком инвентаря
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// Методы конвертации

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility, courts []*domain.Court) *FacilityResponse {
	if f == nil {
		return nil
	}

	shared := make([]string, len(f.SharedSports))
	for i, s := range f.SharedSports {
		shared[i] = string(s)
	}

	rules := f.Rules
	if rules == nil {
		rules = []string{}
	}

	courtResponses := make([]CourtResponse, 0, len(courts))
	for _, c := range courts {
		courtResponses = append(courtResponses, CourtResponse{ID: c.ID, Name: c.Name, IsActive: c.IsActive})
	}

	return &FacilityResponse{
		ID:           f.ID,
		Name:         f.Name,
		SportType:    string(f.SportType),
		IsActive:     f.IsActive,
		OpenTime:     f.OpenTime.String(),
		CloseTime:    f.CloseTime.String(),
		SharedSports: shared,
		IsMultiSport: f.IsMultiSport,
		Rules:        rules,
		CourtCount:   f.CourtCount,
		Courts:       courtResponses,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// FromDomainEquipment конвертирует domain модель в DTO
func FromDomainEquipment(e *domain.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:           e.ID,
		FacilityID:   e.FacilityID,
		Name:         e.Name,
		QtyTotal:     e.QtyTotal,
		QtyAvailable: e.QtyAvailable,
	}
}

// FromDomainEquipmentList конвертирует список domain моделей в DTO
func FromDomainEquipmentList(items []*domain.Equipment) *EquipmentListResponse {
	resp := &EquipmentListResponse{
		Equipment: make([]EquipmentResponse, 0, len(items)),
	}
	for _, e := range items {
		resp.Equipment = append(resp.Equipment, FromDomainEquipment(e))
	}
	return resp
}

// ApplyTo переносит переданные поля в запрос на создание, чтобы пройти общую валидацию
func (r *UpdateFacilityRequest) ApplyTo(f *domain.Facility) *CreateFacilityRequest {
	shared := make([]string, len(f.SharedSports))
	for i, s := range f.SharedSports {
		shared[i] = string(s)
	}

	merged := &CreateFacilityRequest{
		Name:         f.Name,
		SportType:    string(f.SportType),
		IsActive:     &f.IsActive,
		OpenTime:     f.OpenTime.String(),
		CloseTime:    f.CloseTime.String(),
		SharedSports: shared,
		IsMultiSport: f.IsMultiSport,
		Rules:        f.Rules,
		CourtCount:   f.CourtCount,
	}

	if r.Name != nil {
		merged.Name = *r.Name
	}
	if r.SportType != nil {
		merged.SportType = *r.SportType
	}
	if r.IsActive != nil {
		merged.IsActive = r.IsActive
	}
	if r.OpenTime != nil {
		merged.OpenTime = *r.OpenTime
	}
	if r.CloseTime != nil {
		merged.CloseTime = *r.CloseTime
	}
	if r.SharedSports != nil {
		merged.SharedSports = *r.SharedSports
	}
	if r.IsMultiSport != nil {
		merged.IsMultiSport = *r.IsMultiSport
	}
	if r.Rules != nil {
		merged.Rules = *r.Rules
	}
	if r.CourtCount != nil {
		merged.CourtCount = *r.CourtCount
	}

	return merged
}
