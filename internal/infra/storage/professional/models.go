package professional

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// windowRow окно рабочего времени в JSONB
type windowRow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// scheduleRow недельное расписание в JSONB: ключ - день недели 0..6 (0 = воскресенье)
type scheduleRow map[string][]windowRow

// exceptionRow исключение из расписания в JSONB
type exceptionRow struct {
	Date      string      `json:"date"`
	Available bool        `json:"available"`
	Windows   []windowRow `json:"windows,omitempty"`
}

func toWindowRows(windows []domain.TimeWindow) []windowRow {
	if windows == nil {
		return nil
	}
	rows := make([]windowRow, 0, len(windows))
	for _, w := range windows {
		rows = append(rows, windowRow{Start: w.Start, End: w.End})
	}
	return rows
}

func fromWindowRows(rows []windowRow) []domain.TimeWindow {
	if rows == nil {
		return nil
	}
	windows := make([]domain.TimeWindow, 0, len(rows))
	for _, r := range rows {
		windows = append(windows, domain.TimeWindow{Start: r.Start, End: r.End})
	}
	return windows
}

func marshalSchedule(schedule domain.WeeklySchedule) ([]byte, error) {
	row := scheduleRow{}
	for day, windows := range schedule {
		if len(windows) == 0 {
			continue
		}
		row[strconv.Itoa(day)] = toWindowRows(windows)
	}
	return json.Marshal(row)
}

func unmarshalSchedule(data []byte) (domain.WeeklySchedule, error) {
	var schedule domain.WeeklySchedule
	if len(data) == 0 {
		return schedule, nil
	}

	var row scheduleRow
	if err := json.Unmarshal(data, &row); err != nil {
		return schedule, err
	}

	for key, windows := range row {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 {
			return schedule, fmt.Errorf("invalid weekday key %q", key)
		}
		schedule[day] = fromWindowRows(windows)
	}

	return schedule, nil
}

func marshalExceptions(exceptions []domain.ScheduleException) ([]byte, error) {
	rows := make([]exceptionRow, 0, len(exceptions))
	for _, e := range exceptions {
		rows = append(rows, exceptionRow{
			Date:      e.Date.Format(domain.DateFormat),
			Available: e.Available,
			Windows:   toWindowRows(e.Windows),
		})
	}
	return json.Marshal(rows)
}

func unmarshalExceptions(data []byte) ([]domain.ScheduleException, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var rows []exceptionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	exceptions := make([]domain.ScheduleException, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, domain.ScheduleException{
			Date:      date,
			Available: r.Available,
			Windows:   fromWindowRows(r.Windows),
		})
	}

	return exceptions, nil
}
