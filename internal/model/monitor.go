package model

// -----------------------------------------------------------------
// Monitor API Response Models
// -----------------------------------------------------------------

// MonitorResponse is the main response for the monitor API
type MonitorResponse struct {
	Status string    `json:"status"` // "healthy", "idle", "unhealthy"
	Users  UserStats `json:"users"`
	Error  string    `json:"error,omitempty"`
}

// UserStats holds directory-wide user counts
type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
