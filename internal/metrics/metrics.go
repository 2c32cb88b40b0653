// Package metrics регистрирует счётчики Prometheus для диспетчера действий
// и сервисов выпуска карт и установочных токенов.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ActionsTotal считает обработанные действия по имени и результату
// (ok, invalid, not_found, unauthorized, unknown_action, internal).
var ActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "smartwifi_actions_total",
	Help: "Processed API actions by name and result.",
}, []string{"action", "result"})

// CardsIssuedTotal считает выпущенные карты доступа.
var CardsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "smartwifi_cards_issued_total",
	Help: "Voucher cards issued.",
})

// InstallTokensIssuedTotal считает впервые назначенные установочные токены.
var InstallTokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "smartwifi_install_tokens_issued_total",
	Help: "Install tokens generated for cafes.",
})
