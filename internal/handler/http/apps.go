package http

import (
	"encoding/json"
	"net/http"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/models"
)

func (h *Handler) saveProtectedApps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.saveProtectedApps").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.SaveProtectedAppsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.saveProtectedApps").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	count, err := h.services.CredentialService.SaveProtectedApps(ctx, userID, req.Apps)
	if err != nil {
		log.Err(err).Str("func", "*Handler.saveProtectedApps").Msg("error saving protected apps")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SaveProtectedAppsResponse{Count: count}, http.StatusOK)
}
