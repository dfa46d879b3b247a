package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	slotRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/slot"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVC-BookingService/internal/service/slots/models"
	"github.com/m04kA/EVC-BookingService/pkg/ptr"
)

// Service сервис для управления инвентарем слотов станций
// Число слотов станции не может превысить её total_slots, номер слота
// уникален в пределах станции
type Service struct {
	slotRepo    SlotRepository
	stationRepo StationRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	stationRepo StationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		stationRepo: stationRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// AddSlot добавляет слот к станции
// Отклоняется, если станция уже укомплектована до total_slots, номер
// занят или выходит за пределы емкости
func (s *Service) AddSlot(ctx context.Context, stationID int64, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: adding slot number=%d to station id=%d", req.SlotNumber, stationID)

	if req.SlotNumber <= 0 {
		return nil, fmt.Errorf("%w: slotNumber must be a positive integer", ErrInvalidInput)
	}

	status := domain.SlotAvailable
	if req.Status != "" {
		status = domain.SlotStatus(req.Status)
		if !domain.ValidSlotStatus(status) {
			return nil, fmt.Errorf("%w: invalid slot status", ErrInvalidInput)
		}
	}

	var created *domain.Slot

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		station, err := s.stationRepo.GetByID(txCtx, stationID)
		if err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				return ErrStationNotFound
			}
			return fmt.Errorf("%w: AddSlot - get station: %v", ErrInternal, err)
		}

		if req.SlotNumber > station.TotalSlots {
			return ErrNumberExceedsCapacity
		}

		count, err := s.slotRepo.CountByStation(txCtx, stationID)
		if err != nil {
			return fmt.Errorf("%w: AddSlot - count slots: %v", ErrInternal, err)
		}
		if count >= station.TotalSlots {
			return ErrSlotLimitReached
		}

		exists, err := s.slotRepo.ExistsNumber(txCtx, stationID, req.SlotNumber, nil)
		if err != nil {
			return fmt.Errorf("%w: AddSlot - check number: %v", ErrInternal, err)
		}
		if exists {
			return ErrDuplicateSlotNumber
		}

		created, err = s.slotRepo.Create(txCtx, &domain.Slot{
			StationID:  stationID,
			SlotNumber: req.SlotNumber,
			Status:     status,
		})
		if err != nil {
			return fmt.Errorf("%w: AddSlot - create slot: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("AddSlot: successfully added slot id=%d to station id=%d", created.ID, stationID)
	return models.FromDomainSlot(created), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// ListAll получает слоты всех станций
// Админский обзор инвентаря, сортировка по станции и номеру
func (s *Service) ListAll(ctx context.Context) (*models.SlotListResponse, error) {
	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: successfully fetched %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// ListByStation получает слоты станции, отсортированные по номеру
func (s *Service) ListByStation(ctx context.Context, stationID int64) (*models.SlotListResponse, error) {
	if _, err := s.stationRepo.GetByID(ctx, stationID); err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			s.logger.Warn("ListByStation: station id=%d not found", stationID)
			return nil, ErrStationNotFound
		}
		s.logger.Error("ListByStation: repository error for station id=%d: %v", stationID, err)
		return nil, fmt.Errorf("%w: ListByStation - get station: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.ListByStation(ctx, stationID)
	if err != nil {
		s.logger.Error("ListByStation: repository error for station id=%d: %v", stationID, err)
		return nil, fmt.Errorf("%w: ListByStation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStation: successfully fetched %d slots for station id=%d", len(slots), stationID)
	return models.FromDomainSlotList(slots), nil
}

// UpdateSlot обновляет номер и/или статус слота
func (s *Service) UpdateSlot(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: updating slot id=%d", id)

	if req.SlotNumber == nil && req.Status == nil {
		return nil, fmt.Errorf("%w: at least one field is required", ErrInvalidInput)
	}
	if req.SlotNumber != nil && *req.SlotNumber <= 0 {
		return nil, fmt.Errorf("%w: slotNumber must be a positive integer", ErrInvalidInput)
	}
	if req.Status != nil && !domain.ValidSlotStatus(domain.SlotStatus(*req.Status)) {
		return nil, fmt.Errorf("%w: invalid slot status", ErrInvalidInput)
	}

	var updated *domain.Slot

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: UpdateSlot - get slot: %v", ErrInternal, err)
		}

		if req.SlotNumber != nil && *req.SlotNumber != slot.SlotNumber {
			station, err := s.stationRepo.GetByID(txCtx, slot.StationID)
			if err != nil {
				return fmt.Errorf("%w: UpdateSlot - get station: %v", ErrInternal, err)
			}
			if *req.SlotNumber > station.TotalSlots {
				return ErrNumberExceedsCapacity
			}

			exists, err := s.slotRepo.ExistsNumber(txCtx, slot.StationID, *req.SlotNumber, ptr.Ptr(id))
			if err != nil {
				return fmt.Errorf("%w: UpdateSlot - check number: %v", ErrInternal, err)
			}
			if exists {
				return ErrDuplicateSlotNumber
			}
			slot.SlotNumber = *req.SlotNumber
		}

		if req.Status != nil {
			slot.Status = domain.SlotStatus(*req.Status)
		}

		if err := s.slotRepo.Update(txCtx, slot); err != nil {
			return fmt.Errorf("%w: UpdateSlot - save slot: %v", ErrInternal, err)
		}

		updated = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSlot: successfully updated slot id=%d", id)
	return models.FromDomainSlot(updated), nil
}

// DeleteSlot удаляет слот
// Удалить можно только слот в статусе available
func (s *Service) DeleteSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSlot: deleting slot id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: DeleteSlot - get slot: %v", ErrInternal, err)
		}

		if !slot.IsRemovable() {
			return ErrSlotNotRemovable
		}

		if err := s.slotRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%d", id)
	return nil
}
