package http

import (
	"encoding/json"
	"net/http"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/models"
)

func (h *Handler) updatePushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updatePushToken").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.UpdatePushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updatePushToken").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.DispatchService.UpdatePushToken(ctx, userID, req.Token); err != nil {
		log.Err(err).Str("func", "*Handler.updatePushToken").Msg("error updating push token")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: "push token updated"}, http.StatusOK)
}
