// Package response содержит формат JSON‑ответов единой точки /api.
//
// Контракт совместимости с развёрнутыми контроллерами и панелью: успешный
// ответ — это сам запрошенный объект, доменная неудача — {"error": <код>}
// с HTTP 200. Клиенты различают исход по полю error, а не по статусу;
// не-200 зарезервированы за отказом аутентификации, неверным методом и
// недоступностью хранилища.
package response

// Коды доменных ошибок в поле error.
const (
	CodeInvalid          = "invalid"
	CodeNotFound         = "not_found"
	CodeUnknownAction    = "unknown_action"
	CodeUnauthorized     = "unauthorized"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInternal         = "internal"
)

// ErrorResponse — конверт ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error возвращает конверт ошибки с переданным кодом.
func Error(code string) ErrorResponse {
	return ErrorResponse{Error: code}
}
