package models

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
)

// Request модели

// CreateStationRequest запрос на создание станции
// Слоты 1..TotalSlots провиженятся автоматически
type CreateStationRequest struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	TotalSlots   int    `json:"totalSlots"`
	ChargingType string `json:"chargingType"`
	Status       string `json:"status"`
}

// UpdateStationRequest запрос на обновление станции
// Nil поля не меняются; TotalSlots задает resize емкости
type UpdateStationRequest struct {
	Name         *string `json:"name,omitempty"`
	Location     *string `json:"location,omitempty"`
	TotalSlots   *int    `json:"totalSlots,omitempty"`
	ChargingType *string `json:"chargingType,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// ListStationsRequest запрос на поиск станций
type ListStationsRequest struct {
	Location     *string `json:"location,omitempty"`
	ChargingType *string `json:"chargingType,omitempty"`
}

// Response модели

// StationResponse ответ с данными станции
type StationResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	TotalSlots     int    `json:"totalSlots"`
	AvailableSlots int    `json:"availableSlots"`
	ChargingType   string `json:"chargingType"`
	Status         string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StationListResponse ответ со списком станций
type StationListResponse struct {
	Stations []StationResponse `json:"stations"`
}

// Методы конвертации

// FromDomainStation конвертирует domain модель в DTO
func FromDomainStation(s *domain.Station) *StationResponse {
	if s == nil {
		return nil
	}

	return &StationResponse{
		ID:             s.ID,
		Name:           s.Name,
		Location:       s.Location,
		TotalSlots:     s.TotalSlots,
		AvailableSlots: s.AvailableSlots,
		ChargingType:   string(s.ChargingType),
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainStationList конвертирует список domain моделей в DTO
func FromDomainStationList(stations []*domain.Station) *StationListResponse {
	resp := &StationListResponse{
		Stations: make([]StationResponse, len(stations)),
	}

	for i, station := range stations {
		if stationResp := FromDomainStation(station); stationResp != nil {
			resp.Stations[i] = *stationResp
		}
	}

	return resp
}
