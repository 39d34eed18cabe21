package mqtt

// Status reports the state of the MQTT client.
type Status struct {
	Enabled          bool   `json:"enabled"`
	Connected        bool   `json:"connected"`
	ClientID         string `json:"client_id"`
	DisconnectReason string `json:"disconnect_reason"`
}

// Connection is the MQTT client as seen by the console.
type Connection interface {
	Connected() bool
	DisconnectReason() string
}

// Offline is the Connection of a console running without MQTT client.
type Offline struct{}

func (Offline) Connected() bool {
	return false
}

func (Offline) DisconnectReason() string {
	return "client not running"
}

var _ Connection = Offline{}

func NewStatus(s Settings, conn Connection) Status {
	status := Status{
		Enabled:  s.Enabled,
		ClientID: s.ClientID,
	}

	if !s.Enabled {
		return status
	}

	status.Connected = conn.Connected()
	if !status.Connected {
		status.DisconnectReason = conn.DisconnectReason()
	}

	return status
}
