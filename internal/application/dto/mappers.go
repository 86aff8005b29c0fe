package dto

import (
	"time"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
)

// Formatos de fecha en la API.
const (
	DateLayout   = "2006-01-02"
	PeriodLayout = "2006-01"
)

// FromUser mapea un usuario a su salida pública. Es el único camino de User a JSON.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		CompanyID:         u.CompanyID,
		Email:             u.Email,
		Name:              u.Name,
		Phone:             u.Phone,
		ProfilePicture:    u.ProfilePicture,
		Role:              u.Role.String(),
		Standing:          u.Standing,
		MarketID:          u.MarketID,
		HourlyRate:        u.HourlyRate,
		HolidayRate:       u.HolidayRate,
		AccumulatedSalary: u.AccumulatedSalary,
		Theme:             u.Theme,
		AccentColor:       u.AccentColor,
		Language:          u.Language,
		TwoFactorEnabled:  u.TwoFactorEnabled,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// FromUsers mapea una lista de usuarios.
func FromUsers(list []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, FromUser(u))
	}
	return out
}

func FromCompany(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Code:               c.Code,
		Address:            c.Address,
		DefaultHourlyRate:  c.DefaultHourlyRate,
		DefaultHolidayRate: c.DefaultHolidayRate,
		CreatedAt:          c.CreatedAt,
	}
}

func FromMarket(m *entity.Market) MarketResponse {
	return MarketResponse{ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, Address: m.Address, CreatedAt: m.CreatedAt}
}

func FromSchedule(s *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		MarketID:   s.MarketID,
		Date:       s.Date.Format(DateLayout),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		BreakStart: s.BreakStart,
		BreakEnd:   s.BreakEnd,
		Position:   s.Position,
		CreatedAt:  s.CreatedAt,
	}
}

func FromRequest(r *entity.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Type:        r.Type,
		Subject:     r.Subject,
		Details:     r.Details,
		Status:      r.Status,
		IsAnonymous: r.IsAnonymous,
		ReviewedBy:  r.ReviewedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromRequestWithOwner incluye el nombre del solicitante salvo en reportes anónimos.
func FromRequestWithOwner(r *entity.RequestWithOwner) RequestResponse {
	out := FromRequest(&r.Request)
	if !r.IsAnonymous {
		out.UserName = r.UserName
	}
	return out
}

func FromWarning(w *entity.Warning) WarningResponse {
	return WarningResponse{
		ID:             w.ID,
		UserID:         w.UserID,
		IssuedBy:       w.IssuedBy,
		Reason:         w.Reason,
		Status:         w.Status,
		IsFiringNotice: w.IsFiringNotice,
		MarketWide:     w.MarketWide,
		MarketID:       w.MarketID,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func FromCashEntry(e *entity.CashRegisterEntry) CashEntryResponse {
	return CashEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		ShiftDate: e.ShiftDate.Format(DateLayout),
		Status:    e.Status,
		Amount:    e.Amount,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

func FromContract(c *entity.Contract) ContractResponse {
	var notice *string
	if c.NoticeDate != nil {
		s := c.NoticeDate.Format(DateLayout)
		notice = &s
	}
	return ContractResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		StartDate:        c.StartDate.Format(DateLayout),
		EndDate:          c.EndDate.Format(DateLayout),
		IsActive:         c.IsActive,
		NoticeDate:       notice,
		RenewalRequested: c.RenewalRequested,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func FromSOS(a *entity.SOSAlert) SOSResponse {
	return SOSResponse{ID: a.ID, UserID: a.UserID, Type: a.Type, Resolved: a.Resolved, CreatedAt: a.CreatedAt}
}

func FromNotification(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func FromPayment(p *entity.SalaryPayment) PaymentResponse {
	return PaymentResponse{ID: p.ID, UserID: p.UserID, Amount: p.Amount, Period: p.Period, PaidAt: p.PaidAt}
}

func FromStats(s *entity.CompanyStats) CompanyStatsResponse {
	return CompanyStatsResponse{
		TotalUsers:      s.TotalUsers,
		Admins:          s.Admins,
		Managers:        s.Managers,
		Staff:           s.Staff,
		TotalMarkets:    s.TotalMarkets,
		PendingRequests: s.PendingRequests,
		ActiveWarnings:  s.ActiveWarnings,
	}
}

// ParseDate interpreta una fecha YYYY-MM-DD en UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
