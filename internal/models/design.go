package models

import "time"

// Design представляет макет печатной карты для конкретного кафе.
// Имя кафе фиксируется в момент создания макета.
type Design struct {
	ID        string    `json:"id"`
	CafeID    string    `json:"cafeId"`
	CafeName  *string   `json:"cafeName"`
	Name      string    `json:"name"`
	Template  string    `json:"template"`
	CreatedAt time.Time `json:"createdAt"`
}
