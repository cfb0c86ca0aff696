package http

import (
	"encoding/json"
	"net/http"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/models"
)

func (h *Handler) sendVerificationCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sendVerificationCode").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.sendVerificationCode").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.PhoneNumber == "" {
		log.Error().Str("func", "*Handler.sendVerificationCode").Msg("no phone number was given")
		http.Error(w, "no phone number was given", http.StatusBadRequest)
		return
	}

	// The code itself never leaves the server other than through the SMS
	// gateway.
	if _, err := h.services.OTPService.Issue(ctx, userID, req.PhoneNumber); err != nil {
		log.Err(err).Str("func", "*Handler.sendVerificationCode").Msg("error issuing verification code")
		http.Error(w, "error issuing verification code", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: "verification code sent"}, http.StatusOK)
}

func (h *Handler) verifyCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.verifyCode").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.verifyCode").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.OTPService.Verify(ctx, userID, req.Code); err != nil {
		log.Err(err).Str("func", "*Handler.verifyCode").Msg("error verifying code")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: "phone number verified"}, http.StatusOK)
}
