package update_booking

import (
	"time"

	"github.com/m04kA/EVC-BookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
// Все поля расписания обязательны: окно перезаписывается целиком
type Request struct {
	BookingID int64            // ID переносимого бронирования
	UserID    int64            // ID пользователя-владельца
	StationID int64            // Новая станция
	SlotID    int64            // Новый слот
	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое время начала
	EndTime   types.TimeString // Новое время конца
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID            int64            // ID бронирования
	UserID        int64            // ID пользователя
	StationID     int64            // ID станции
	SlotID        int64            // ID слота
	BookingDate   time.Time        // Дата бронирования
	StartTime     types.TimeString // Время начала
	EndTime       types.TimeString // Время конца
	Status        string           // Статус бронирования
	PaymentStatus string           // Статус оплаты
	CreatedAt     time.Time        // Время создания
	UpdatedAt     time.Time        // Время обновления
}
