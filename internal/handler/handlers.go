package handler

import (
	"github.com/mpetrenko/shroud/internal/handler/http"
	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/service"
)

// Handlers bundles the transport-layer handlers of the application.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers constructs the transport handlers over the service layer.
func NewHandlers(services *service.Services, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}
}
