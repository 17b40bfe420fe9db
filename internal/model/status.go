package model

// Connection ready states reported by /api/db-status.
const (
	ReadyStateDisconnected = 0
	ReadyStateConnected    = 1
	ReadyStateConnecting   = 2
)

// HealthStatus - body of GET /api/health
type HealthStatus struct {
	Message   string `json:"message"`
	Database  string `json:"database"` // Connected or Disconnected
	Timestamp string `json:"timestamp"`
}

// DBStatus - body of GET /api/db-status
type DBStatus struct {
	Connected  bool   `json:"connected"`
	ReadyState int    `json:"readyState"`
	Host       string `json:"host"`
	Name       string `json:"name"`
	Driver     string `json:"driver"`
	LastError  string `json:"lastError,omitempty"`
}
