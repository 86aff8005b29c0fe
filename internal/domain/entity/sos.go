package entity

import "time"

// Tipos de alerta SOS.
const (
	SOSPolice       = "police"
	SOSSecurity     = "security"
	SOSAmbulance    = "ambulance"
	SOSFirefighters = "firefighters"
)

// SOSAlert alerta de emergencia disparada por un empleado.
type SOSAlert struct {
	ID        string
	UserID    string
	Type      string
	Resolved  bool
	CreatedAt time.Time
}
