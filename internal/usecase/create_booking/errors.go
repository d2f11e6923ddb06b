package create_booking

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден, не принадлежит бизнесу или неактивен
	ErrProfessionalNotFound = errors.New("create_booking: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена, не принадлежит бизнесу или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidTimeSlot возвращается, когда услуга не помещается в сутки
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда интервал не входит в свободные слоты (расписание, блокировка, буфер, шаг)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
