package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router for the REST API.
//
// Every route passes through trace-id and logging middleware. All routes
// except registration, login, and the health probe additionally require a
// valid bearer token; the auth middleware stores the caller's user id in the
// request context.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/health", h.health)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Delete("/api/user", h.deleteAccount)

		r.Post("/api/security/pins", h.savePins)
		r.Post("/api/security/pins/verify", h.verifyPin)
		r.Post("/api/security/apps", h.saveProtectedApps)

		r.Post("/api/security/triggers", h.trigger)
		r.Post("/api/security/mode/deactivate", h.deactivate)
		r.Get("/api/security/alerts", h.alerts)

		r.Post("/api/security/commands/lock", h.lockDevice)
		r.Post("/api/security/commands/wipe", h.wipeData)

		r.Post("/api/device/token", h.updatePushToken)

		r.Post("/api/phone/code", h.sendVerificationCode)
		r.Post("/api/phone/verify", h.verifyCode)

		r.Get("/api/activity", h.activityFeed)
	})

	return router
}
