// Package models содержит структуры данных предметной области:
// пользователи, кафе, тарифные планы, карты доступа и макеты печати.
package models

import "time"

// Роли пользователей.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User представляет учётную запись оператора или администратора.
type User struct {
	UID          string    `json:"uid"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session представляет проверенный сеанс: кто выполняет запрос и до какого
// момента действует его токен. Не хранится в базе, переносится внутри JWT.
type Session struct {
	UserUID   string
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
