package entity

// CompanyStats agregados de una empresa para el panel ejecutivo.
type CompanyStats struct {
	TotalUsers      int
	Admins          int
	Managers        int
	Staff           int
	TotalMarkets    int
	PendingRequests int
	ActiveWarnings  int
}
