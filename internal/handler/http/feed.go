package http

import (
	"net/http"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/models"
)

func (h *Handler) activityFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.activityFeed").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	events, err := h.services.CredentialService.ActivityFeed(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.activityFeed").Msg("error getting activity feed")
		http.Error(w, "error getting activity feed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ActivityFeedResponse{Events: events}, http.StatusOK)
}
