package entity

import "time"

// Tipos de notificación.
const (
	NotificationWarning  = "warning"
	NotificationRequest  = "request"
	NotificationReport   = "report"
	NotificationCash     = "cash"
	NotificationBreak    = "break"
	NotificationContract = "contract"
	NotificationSOS      = "sos"
	NotificationGeneral  = "general"
)

// Notification aviso persistido para un usuario (la entrega push queda fuera).
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}
