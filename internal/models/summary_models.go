package models

type Summary struct {
	Balance      Amount `json:"balance"`
	TotalIncome  Amount `json:"totalIncome"`
	TotalOutcome Amount `json:"totalOutcome"`
}

type GraphView string

const (
	QuartalView GraphView = "quartal"
	MonthlyView GraphView = "monthly"
	WeeklyView  GraphView = "weekly"
)

func (v GraphView) IsValid() bool {
	switch v {
	case QuartalView, MonthlyView, WeeklyView:
		return true
	}
	return false
}

type GraphRequest struct {
	WalletID WalletID  `json:"walletId"`
	View     GraphView `json:"view"`
	Year     int       `json:"year"`
	Month    string    `json:"month,omitempty"`
}

type GraphPoint struct {
	Label   string `json:"label"`
	Income  Amount `json:"income"`
	Outcome Amount `json:"outcome"`
}

type Graph struct {
	Year int          `json:"year"`
	Data []GraphPoint `json:"data"`
}
