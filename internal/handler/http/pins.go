package http

import (
	"encoding/json"
	"net/http"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/models"
)

func (h *Handler) savePins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.savePins").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.SavePinsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.savePins").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.CredentialService.SavePins(ctx, userID, req); err != nil {
		log.Err(err).Str("func", "*Handler.savePins").Msg("error saving pins")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: "pins saved"}, http.StatusOK)
}

func (h *Handler) verifyPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.verifyPin").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.verifyPin").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.CredentialService.VerifyPin(ctx, userID, req.Pin)
	if err != nil {
		log.Err(err).Str("func", "*Handler.verifyPin").Msg("error verifying pin")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	// A non-matching PIN is a negative verification result, not an HTTP error.
	utils.WriteJSON(w, result, http.StatusOK)
}
