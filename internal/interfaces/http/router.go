package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/origon-auth/internal/application/auth"
	"github.com/jhoicas/origon-auth/internal/domain/entity"
	"github.com/jhoicas/origon-auth/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Users    *auth.Flow[*entity.User]
	Hosts    *auth.Flow[*entity.Host]
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics    // nil = sin métricas HTTP
	Gatherer prometheus.Gatherer // nil = sin /metrics

	SwaggerFile string // vacío = sin /docs
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Usuarios finales
	users := NewUserHandler(deps.Users, deps.Logger)
	userAuth := AuthMiddleware[*entity.User](deps.Users, deps.Logger)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", users.Register)
	authGroup.Post("/login", users.Login)
	authGroup.Post("/logout", userAuth, users.Logout)
	authGroup.Get("/profile", userAuth, users.Profile)
	authGroup.Put("/profile", userAuth, users.UpdateProfile)
	authGroup.Patch("/profile", userAuth, users.UpdateProfile)
	authGroup.Post("/change-password", userAuth, users.ChangePassword)
	authGroup.Get("/user", userAuth, users.Detail)

	// Hosts: tokens propios, un token de usuario no sirve aquí
	hosts := NewHostHandler(deps.Hosts, deps.Logger)
	hostAuth := AuthMiddleware[*entity.Host](deps.Hosts, deps.Logger)
	hostGroup := app.Group("/host")
	hostGroup.Post("/register", hosts.Register)
	hostGroup.Post("/login", hosts.Login)
	hostGroup.Post("/logout", hostAuth, hosts.Logout)
	hostGroup.Get("/profile", hostAuth, hosts.Profile)
	hostGroup.Put("/profile", hostAuth, hosts.UpdateProfile)
	hostGroup.Patch("/profile", hostAuth, hosts.UpdateProfile)
	hostGroup.Post("/change-password", hostAuth, hosts.ChangePassword)
	hostGroup.Get("/details", hostAuth, hosts.Detail)
	hostGroup.Get("/verification-status", hostAuth, hosts.VerificationStatus)
}
