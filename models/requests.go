package models

// Request and response bodies of the HTTP API. Kept in models so the mobile
// client and the web console can share one wire contract.

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SavePinsRequest provisions the normal and security PINs together.
type SavePinsRequest struct {
	NormalPin   string `json:"normal_pin"`
	SecurityPin string `json:"security_pin"`
}

// VerifyPinRequest submits a PIN for classification.
type VerifyPinRequest struct {
	Pin string `json:"pin"`
}

// VerifyPinResponse reports which mode, if any, the submitted PIN unlocked.
// Mode is nil when the PIN matched neither hash.
type VerifyPinResponse struct {
	Success bool  `json:"success"`
	Mode    *Mode `json:"mode"`
}

// TriggerRequest is an internal security-mode trigger reported by the device
// (motion sensor, panic button) or the web console.
type TriggerRequest struct {
	AlertType AlertType      `json:"alert_type"`
	Details   map[string]any `json:"details,omitempty"`
}

// TriggerResponse returns the id of the alert the trigger created.
type TriggerResponse struct {
	AlertID string `json:"alert_id"`
}

// DeactivateRequest resolves a named alert and returns the user to normal
// mode.
type DeactivateRequest struct {
	AlertID        string         `json:"alert_id"`
	ResolutionType ResolutionType `json:"resolution_type,omitempty"`
}

// CommandRequest targets a remote command at the alert it belongs to.
type CommandRequest struct {
	AlertID string `json:"alert_id"`
}

// UpdatePushTokenRequest registers the device's push delivery token.
type UpdatePushTokenRequest struct {
	Token string `json:"token"`
}

// SaveProtectedAppsRequest replaces the user's disguise-mode app list.
type SaveProtectedAppsRequest struct {
	Apps []ProtectedApp `json:"apps"`
}

// SaveProtectedAppsResponse reports how many entries were stored.
type SaveProtectedAppsResponse struct {
	Count int `json:"count"`
}

// SendCodeRequest asks for a phone-verification code to be issued.
type SendCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// VerifyCodeRequest submits a phone-verification code.
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// AlertsResponse lists the caller's unresolved alerts, most recent first.
type AlertsResponse struct {
	Alerts []SecurityAlert `json:"alerts"`
}

// ActivityFeedResponse lists recent unlocks and failed attempts.
type ActivityFeedResponse struct {
	Events []UnlockEvent `json:"events"`
}

// StatusResponse is the generic ok/error body for operations with no other
// payload.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
