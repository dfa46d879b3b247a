package create_booking

import (
	"time"

	"github.com/m04kA/EVC-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	StationID int64            // ID станции
	SlotID    int64            // ID слота
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала окна (например, "10:00")
	EndTime   types.TimeString // Время конца окна (полуоткрытый интервал)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
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
