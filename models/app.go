package models

// ProtectedApp is one entry of the user's disguise-mode app list: an
// application that stays reachable while the device is in security mode.
type ProtectedApp struct {
	UserID      int64  `json:"-"`
	PackageName string `json:"package_name"`
	AppName     string `json:"app_name"`
	Icon        string `json:"icon,omitempty"`
}

// TableName returns the name of the database table backing ProtectedApp.
func (a ProtectedApp) TableName() string {
	return "protected_apps"
}
