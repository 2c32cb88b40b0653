package models

import "time"

// Единицы измерения срока действия тарифа.
const (
	DurationUnitHours  = "hours"
	DurationUnitDays   = "days"
	DurationUnitMonths = "months"
)

// PlanDuration описывает срок действия тарифа: значение и единицу измерения.
type PlanDuration struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// Plan представляет тарифный план: цена, квота трафика, ограничения скорости
// и срок действия. После создания план не редактируется.
type Plan struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	QuotaMB      int64        `json:"quotaMB"`
	UploadMbps   int          `json:"uploadMbps"`
	DownloadMbps int          `json:"downloadMbps"`
	Duration     PlanDuration `json:"duration"`
	CreatedAt    time.Time    `json:"createdAt"`
}
