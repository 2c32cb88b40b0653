package models

import "time"

// Статусы кафе.
const (
	CafeStatusActive    = "active"
	CafeStatusSuspended = "suspended"
)

// Cafe представляет заведение, в котором развёрнута точка доступа.
// InstallToken назначается один раз при установке контроллера и после этого
// не меняется: он зашит в конфигурацию устройства.
type Cafe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address,omitempty"`
	Owner        *string   `json:"owner,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Landline     *string   `json:"landline,omitempty"`
	Status       string    `json:"status"`
	InstallToken *string   `json:"installToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
