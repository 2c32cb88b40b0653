package models

import "time"

// Статусы карты доступа. Статус "new" означает, что код ещё ни разу
// не был погашен контроллером.
const (
	CardStatusNew       = "new"
	CardStatusActivated = "activated"
	CardStatusExpired   = "expired"
	CardStatusRevoked   = "revoked"
)

// Card представляет одноразовый код доступа, привязанный к кафе и тарифу.
// Код уникален во всей системе, а не только внутри одного кафе.
type Card struct {
	Code      string    `json:"code"`
	CafeID    string    `json:"cafeId"`
	PlanID    string    `json:"planId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CardFilter задаёт параметры поиска карт: равенство по кафе и/или коду.
// Limit обрезается до максимального размера страницы на уровне сервиса.
type CardFilter struct {
	CafeID string
	Code   string
	Limit  int
}

// CardBatchEvent публикуется в очередь печати после успешной генерации
// партии карт.
type CardBatchEvent struct {
	BatchID  string    `json:"batchId"`
	CafeID   string    `json:"cafeId"`
	PlanID   string    `json:"planId"`
	Count    int       `json:"count"`
	IssuedAt time.Time `json:"issuedAt"`
}
