package stations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVC-BookingService/internal/service/stations/models"
	"github.com/m04kA/EVC-BookingService/pkg/ptr"
)

// Service сервис для администрирования станций зарядки
// Владеет инвариантом емкости: число слотов станции никогда не превышает
// total_slots, счетчик доступности остается в границах [0, total_slots]
type Service struct {
	stationRepo StationRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса станций
func NewService(
	stationRepo StationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		stationRepo: stationRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает станцию и провиженит слоты 1..TotalSlots
// Станция и слоты создаются в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateStationRequest) (*models.StationResponse, error) {
	s.logger.Info("Create: creating station name=%s, total_slots=%d", req.Name, req.TotalSlots)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Station

	// Проверка имени и вставка в одной сериализуемой транзакции:
	// конкурентное создание с тем же именем не проскочит мимо проверки
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		taken, err := s.stationRepo.ExistsByName(txCtx, req.Name, nil)
		if err != nil {
			return fmt.Errorf("%w: Create - check name: %v", ErrInternal, err)
		}
		if taken {
			return ErrStationNameTaken
		}

		station := &domain.Station{
			Name:           req.Name,
			Location:       req.Location,
			TotalSlots:     req.TotalSlots,
			AvailableSlots: req.TotalSlots,
			ChargingType:   domain.ChargingType(req.ChargingType),
			Status:         domain.StationStatus(req.Status),
		}

		created, err = s.stationRepo.Create(txCtx, station)
		if err != nil {
			return fmt.Errorf("%w: Create - create station: %v", ErrInternal, err)
		}

		numbers := make([]int, req.TotalSlots)
		for i := range numbers {
			numbers[i] = i + 1
		}

		if err := s.slotRepo.BulkCreate(txCtx, created.ID, numbers); err != nil {
			return fmt.Errorf("%w: Create - provision slots: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrStationNameTaken) {
			s.logger.Error("Create: failed to create station name=%s: %v", req.Name, err)
		}
		return nil, err
	}

	s.logger.Info("Create: successfully created station id=%d with %d slots", created.ID, created.TotalSlots)
	return models.FromDomainStation(created), nil
}

// GetByID получает станцию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.StationResponse, error) {
	station, err := s.stationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			s.logger.Warn("GetByID: station id=%d not found", id)
			return nil, ErrStationNotFound
		}
		s.logger.Error("GetByID: repository error for station id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStation(station), nil
}

// List получает активные станции с фильтрацией по локации и типу зарядки
func (s *Service) List(ctx context.Context, req *models.ListStationsRequest) (*models.StationListResponse, error) {
	filter := domain.StationFilter{
		OnlyActive: true,
		Location:   req.Location,
	}

	if req.ChargingType != nil {
		chargingType := domain.ChargingType(*req.ChargingType)
		if !domain.ValidChargingType(chargingType) {
			s.logger.Warn("List: invalid charging type=%s", *req.ChargingType)
			return nil, fmt.Errorf("%w: invalid charging type", ErrInvalidInput)
		}
		filter.ChargingType = &chargingType
	}

	stations, err := s.stationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d stations", len(stations))
	return models.FromDomainStationList(stations), nil
}

// Update обновляет атрибуты станции, включая resize емкости
//
// Resize выполняется в сериализуемой транзакции:
// - расширение допровиженивает недостающие номера 1..newTotal,
//   счетчик доступности растет на дельту
// - сжатие ниже числа занятых (occupied/maintenance) слотов отклоняется;
//   иначе удаляются available слоты со старших номеров
// - если подтвержденные бронирования уже потребили больше емкости, чем
//   остается после сжатия, операция отклоняется, счетчик не может уйти
//   ниже нуля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateStationRequest) (*models.StationResponse, error) {
	s.logger.Info("Update: updating station id=%d", id)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for station id=%d: %v", id, err)
		return nil, err
	}

	var updated *domain.Station

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		station, err := s.stationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				return ErrStationNotFound
			}
			return fmt.Errorf("%w: Update - get station: %v", ErrInternal, err)
		}

		if req.Name != nil && *req.Name != station.Name {
			taken, err := s.stationRepo.ExistsByName(txCtx, *req.Name, ptr.Ptr(id))
			if err != nil {
				return fmt.Errorf("%w: Update - check name: %v", ErrInternal, err)
			}
			if taken {
				return ErrStationNameTaken
			}
			station.Name = *req.Name
		}

		if req.Location != nil {
			station.Location = *req.Location
		}
		if req.ChargingType != nil {
			station.ChargingType = domain.ChargingType(*req.ChargingType)
		}
		if req.Status != nil {
			station.Status = domain.StationStatus(*req.Status)
		}

		if req.TotalSlots != nil && *req.TotalSlots != station.TotalSlots {
			if err := s.resize(txCtx, station, *req.TotalSlots); err != nil {
				return err
			}
		}

		if err := s.stationRepo.Update(txCtx, station); err != nil {
			return fmt.Errorf("%w: Update - save station: %v", ErrInternal, err)
		}

		updated = station
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated station id=%d", id)
	return models.FromDomainStation(updated), nil
}

// Delete удаляет станцию вместе с её слотами
// Бронирования, ссылающиеся на удаленную станцию, становятся висячими:
// любые последующие операции над ними отклоняются
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting station id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.stationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				return ErrStationNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted station id=%d with its slots", id)
	return nil
}

// resize меняет емкость станции внутри активной транзакции
func (s *Service) resize(ctx context.Context, station *domain.Station, newTotal int) error {
	unavailable, err := s.slotRepo.CountUnavailableByStation(ctx, station.ID)
	if err != nil {
		return fmt.Errorf("%w: resize - count unavailable slots: %v", ErrInternal, err)
	}

	if newTotal < unavailable {
		s.logger.Warn("resize: station id=%d cannot shrink to %d, %d slots are occupied or in maintenance",
			station.ID, newTotal, unavailable)
		return ErrCapacityExceeded
	}

	// Счетчик доступности сдвигается на дельту емкости; выход за границы
	// означает, что подтвержденные бронирования не умещаются в новую емкость
	delta := newTotal - station.TotalSlots
	newAvailable := station.AvailableSlots + delta
	if newAvailable < 0 || newAvailable > newTotal {
		s.logger.Warn("resize: station id=%d cannot resize to %d, approved bookings hold %d slots",
			station.ID, newTotal, station.TotalSlots-station.AvailableSlots)
		return ErrCapacityExceeded
	}

	slots, err := s.slotRepo.ListByStation(ctx, station.ID)
	if err != nil {
		return fmt.Errorf("%w: resize - list slots: %v", ErrInternal, err)
	}

	if delta > 0 {
		// Расширение: допровиженить недостающие номера 1..newTotal
		existing := make(map[int]bool, len(slots))
		for _, slot := range slots {
			existing[slot.SlotNumber] = true
		}

		missing := make([]int, 0, delta)
		for number := 1; number <= newTotal; number++ {
			if !existing[number] {
				missing = append(missing, number)
			}
		}

		if err := s.slotRepo.BulkCreate(ctx, station.ID, missing); err != nil {
			return fmt.Errorf("%w: resize - provision slots: %v", ErrInternal, err)
		}
	} else {
		// Сжатие: удалить лишние available слоты со старших номеров
		toRemove := len(slots) - newTotal
		if toRemove > 0 {
			removed, err := s.slotRepo.DeleteTopAvailable(ctx, station.ID, toRemove)
			if err != nil {
				return fmt.Errorf("%w: resize - remove slots: %v", ErrInternal, err)
			}
			if removed < toRemove {
				// Недостаточно available слотов - занятые не удаляем
				s.logger.Warn("resize: station id=%d removed only %d of %d slots", station.ID, removed, toRemove)
				return ErrCapacityExceeded
			}
		}
	}

	station.TotalSlots = newTotal
	station.AvailableSlots = newAvailable

	return nil
}

// Валидация

func validateCreateRequest(req *models.CreateStationRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if req.TotalSlots <= 0 {
		return fmt.Errorf("%w: totalSlots must be a positive integer", ErrInvalidInput)
	}
	if !domain.ValidChargingType(domain.ChargingType(req.ChargingType)) {
		return fmt.Errorf("%w: invalid charging type", ErrInvalidInput)
	}
	if !domain.ValidStationStatus(domain.StationStatus(req.Status)) {
		return fmt.Errorf("%w: invalid station status", ErrInvalidInput)
	}
	return nil
}

func validateUpdateRequest(req *models.UpdateStationRequest) error {
	if req.Name == nil && req.Location == nil && req.TotalSlots == nil &&
		req.ChargingType == nil && req.Status == nil {
		return fmt.Errorf("%w: at least one field is required", ErrInvalidInput)
	}
	if req.Name != nil && *req.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if req.TotalSlots != nil && *req.TotalSlots <= 0 {
		return fmt.Errorf("%w: totalSlots must be a positive integer", ErrInvalidInput)
	}
	if req.ChargingType != nil && !domain.ValidChargingType(domain.ChargingType(*req.ChargingType)) {
		return fmt.Errorf("%w: invalid charging type", ErrInvalidInput)
	}
	if req.Status != nil && !domain.ValidStationStatus(domain.StationStatus(*req.Status)) {
		return fmt.Errorf("%w: invalid station status", ErrInvalidInput)
	}
	return nil
}
