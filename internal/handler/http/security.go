package http

import (
	"encoding/json"
	"net/http"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/models"
)

func (h *Handler) trigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.trigger").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.trigger").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	switch req.AlertType {
	case models.AlertAbruptMovement, models.AlertSuspiciousSpeed, models.AlertPanicButton, models.AlertWebConsole:
	default:
		// pin_security_used is reserved for the credential verifier and is
		// never accepted from the wire.
		log.Error().Str("func", "*Handler.trigger").Str("alert_type", string(req.AlertType)).Msg("unknown alert type")
		http.Error(w, "unknown alert type", http.StatusBadRequest)
		return
	}

	alertID, err := h.services.ModeService.Activate(ctx, userID, req.AlertType, models.GenericDetails(req.Details))
	if err != nil {
		log.Err(err).Str("func", "*Handler.trigger").Msg("error activating security mode")
		http.Error(w, "error activating security mode", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.TriggerResponse{AlertID: alertID}, http.StatusCreated)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deactivate").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.DeactivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.deactivate").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.ModeService.Deactivate(ctx, userID, req.AlertID, req.ResolutionType); err != nil {
		log.Err(err).Str("func", "*Handler.deactivate").Msg("error deactivating security mode")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: "security mode deactivated"}, http.StatusOK)
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.alerts").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	alerts, err := h.services.ModeService.UnresolvedAlerts(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.alerts").Msg("error listing alerts")
		http.Error(w, "error listing alerts", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AlertsResponse{Alerts: alerts}, http.StatusOK)
}

func (h *Handler) lockDevice(w http.ResponseWriter, r *http.Request) {
	h.sendCommand(w, r, models.CommandLockDevice)
}

func (h *Handler) wipeData(w http.ResponseWriter, r *http.Request) {
	h.sendCommand(w, r, models.CommandWipeData)
}

// sendCommand is the shared body of the remote command endpoints. The command
// result distinguishes "accepted but undeliverable" (success=false, HTTP 200)
// from a gateway failure (HTTP 503 via statusFromError).
func (h *Handler) sendCommand(w http.ResponseWriter, r *http.Request, command models.DeviceCommand) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sendCommand").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.sendCommand").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.DispatchService.SendCommand(ctx, userID, req.AlertID, command, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sendCommand").Str("command", string(command)).Msg("error sending command")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: result.Success, Message: result.Message}, http.StatusOK)
}
