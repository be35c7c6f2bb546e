package report_utilization

import "time"

// MaxReportRangeDays максимальная длина периода отчета
const MaxReportRangeDays = 92

// Request модель запроса на отчет о загрузке
type Request struct {
	OrgID      int64
	LocationID int64
	ResourceID *int64 // опциональный фильтр по одному ресурсу
	StartDate  time.Time
	EndDate    time.Time // включительно
}

// Response модель ответа с отчетом о загрузке
type Response struct {
	OrgID      int64
	LocationID int64
	StartDate  time.Time
	EndDate    time.Time
	Rows       []UtilizationRow
}

// UtilizationRow загрузка одного ресурса за один день
// BookedMinutes учитывает каждую бронь отдельно: две одновременные брони
// ресурса с вместимостью 2 дают вдвое больше занятых минут, чем одна
type UtilizationRow struct {
	Date            time.Time
	ResourceID      int64
	ResourceName    string
	Capacity        int
	OpenMinutes     int     // длина рабочего окна; 0 в закрытый день
	CapacityMinutes int     // OpenMinutes * Capacity
	BookedMinutes   int     // минуты броней, отсеченные по рабочим часам
	FreeMinutes     int     // CapacityMinutes - BookedMinutes
	UtilizationPct  float64 // BookedMinutes / CapacityMinutes * 100
	PeakConcurrency int     // пик одновременных броней за день
	BookingsCount   int     // число активных броней за день
}
