// Package smartwifi собирает приложение: хранилище, кеш, сервисы и маршруты.
package smartwifi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/egsmart/smartwifi-backend/internal/http/dispatch"
	loginhandler "github.com/egsmart/smartwifi-backend/internal/http/handlers/auth/login"
	mehandler "github.com/egsmart/smartwifi-backend/internal/http/handlers/auth/me"
	cardgenerate "github.com/egsmart/smartwifi-backend/internal/http/handlers/card/generate"
	cardsearch "github.com/egsmart/smartwifi-backend/internal/http/handlers/card/search"
	cafecreate "github.com/egsmart/smartwifi-backend/internal/http/handlers/cafe/create"
	cafeinstall "github.com/egsmart/smartwifi-backend/internal/http/handlers/cafe/install"
	cafelist "github.com/egsmart/smartwifi-backend/internal/http/handlers/cafe/list"
	cafetoggle "github.com/egsmart/smartwifi-backend/internal/http/handlers/cafe/toggle"
	designcreate "github.com/egsmart/smartwifi-backend/internal/http/handlers/design/create"
	designlist "github.com/egsmart/smartwifi-backend/internal/http/handlers/design/list"
	designread "github.com/egsmart/smartwifi-backend/internal/http/handlers/design/read"
	plancreate "github.com/egsmart/smartwifi-backend/internal/http/handlers/plan/create"
	planlist "github.com/egsmart/smartwifi-backend/internal/http/handlers/plan/list"
	planremove "github.com/egsmart/smartwifi-backend/internal/http/handlers/plan/remove"
	"github.com/egsmart/smartwifi-backend/internal/http/middlewarectx"
	authservice "github.com/egsmart/smartwifi-backend/internal/services/auth"
	catalogservice "github.com/egsmart/smartwifi-backend/internal/services/catalog"
	installservice "github.com/egsmart/smartwifi-backend/internal/services/install"
	voucherservice "github.com/egsmart/smartwifi-backend/internal/services/voucher"
)

// RegisterRoutes регистрирует единую точку /api и служебные маршруты.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	authSvc *authservice.Service,
	voucherSvc *voucherservice.Service,
	installSvc *installservice.Service,
	catalogSvc *catalogservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	d := dispatch.New(logger, authSvc)
	d.Register("login", loginhandler.New(logger, authSvc))
	d.Register("me", mehandler.New(logger))
	d.Register("getCafes", cafelist.New(logger, catalogSvc))
	d.Register("addCafe", cafecreate.New(logger, catalogSvc))
	d.Register("toggleCafe", cafetoggle.New(logger, catalogSvc))
	d.Register("installCafe", cafeinstall.New(logger, installSvc))
	d.Register("getPlans", planlist.New(logger, catalogSvc))
	d.Register("addPlan", plancreate.New(logger, catalogSvc))
	d.Register("deletePlan", planremove.New(logger, catalogSvc))
	d.Register("generateCards", cardgenerate.New(logger, voucherSvc))
	d.Register("searchCards", cardsearch.New(logger, voucherSvc))
	d.Register("addDesign", designcreate.New(logger, catalogSvc))
	d.Register("getDesigns", designlist.New(logger, catalogSvc))
	d.Register("getDesign", designread.New(logger, catalogSvc))

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Handle("/api", d)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
