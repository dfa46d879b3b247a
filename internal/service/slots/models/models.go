package models

import "github.com/m04kA/EVC-BookingService/internal/domain"

// AddSlotRequest запрос на добавление слота к станции
type AddSlotRequest struct {
	SlotNumber int    `json:"slotNumber"`
	Status     string `json:"status"`
}

// UpdateSlotRequest запрос на обновление слота
type UpdateSlotRequest struct {
	SlotNumber *int    `json:"slotNumber,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// SlotResponse слот в ответе API
type SlotResponse struct {
	ID         int64  `json:"id"`
	StationID  int64  `json:"stationId"`
	SlotNumber int    `json:"slotNumber"`
	Status     string `json:"status"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует доменную модель в ответ API
func FromDomainSlot(slot *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:         slot.ID,
		StationID:  slot.StationID,
		SlotNumber: slot.SlotNumber,
		Status:     string(slot.Status),
	}
}

// FromDomainSlotList конвертирует список доменных моделей в ответ API
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, *FromDomainSlot(slot))
	}
	return &SlotListResponse{Slots: result}
}
