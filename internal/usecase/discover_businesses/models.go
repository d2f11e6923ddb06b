package discover_businesses

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/discovery"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Mode режим поиска
type Mode string

const (
	ModeListing      Mode = "listing"      // без даты: список бизнесов с услугами
	ModeAvailability Mode = "availability" // с датой: только бизнесы со свободными слотами
)

// Options параметры fan-out
type Options struct {
	MaxConcurrency int           // Максимум одновременно обрабатываемых бизнесов (и специалистов внутри бизнеса)
	FetchTimeout   time.Duration // Таймаут каждого обращения к хранилищу
}

// Request модель запроса поиска
type Request struct {
	Address  string            // Подстрока адреса (без учета регистра)
	Category *string           // Категория (опционально)
	Date     *time.Time        // Дата (опционально); без даты - режим списка
	Time     *types.TimeString // Момент времени (опционально, только вместе с датой)
}

// Response модель ответа
type Response struct {
	Mode       Mode
	Businesses []discovery.DiscoveredBusiness
}
