package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"wallet_client/internal/amount"
	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
)

var quartalLabels = map[string]string{
	"Q1": "Jan - Mar",
	"Q2": "Apr - Jun",
	"Q3": "Jul - Sep",
	"Q4": "Oct - Dec",
}

type SummaryServicer interface {
	Overview(ctx context.Context, view models.GraphView, year int) (Overview, error)
}

var _ SummaryServicer = (*SummaryService)(nil)

type Overview struct {
	Summary        models.Summary      `json:"summary"`
	DisplayBalance string              `json:"displayBalance"`
	DisplayIncome  string              `json:"displayIncome"`
	DisplayOutcome string              `json:"displayOutcome"`
	View           models.GraphView    `json:"view"`
	Year           int                 `json:"year"`
	Years          []int               `json:"years"`
	Points         []models.GraphPoint `json:"points"`
}

type SummaryService struct {
	api       WalletAPI
	session   Session
	formatter *amount.Formatter
	log       *slog.Logger
	now       func() time.Time
}

func NewSummaryService(api WalletAPI, session Session, formatter *amount.Formatter, log *slog.Logger) *SummaryService {
	return &SummaryService{api: api, session: session, formatter: formatter, log: log, now: time.Now}
}

// Overview fetches the totals and the graph for one view of a year at once.
// An empty view means quartal, a zero year means the current one.
func (s *SummaryService) Overview(ctx context.Context, view models.GraphView, year int) (Overview, error) {
	const op = "service.Overview"
	walletID := s.session.WalletID()
	if !walletID.Valid() {
		return Overview{}, fmt.Errorf("%s: %w", op, custom_err.ErrWalletNotLoaded)
	}
	if view == "" {
		view = models.QuartalView
	}
	if !view.IsValid() {
		return Overview{}, fmt.Errorf("%s: %w: unknown view %q", op, custom_err.ErrValidation, view)
	}
	now := s.now()
	if year == 0 {
		year = now.Year()
	}

	req := models.GraphRequest{WalletID: walletID, View: view, Year: year}
	if view == models.WeeklyView {
		req.Month = fmt.Sprintf("%02d", int(now.Month()))
	}

	var (
		summary models.Summary
		graph   models.Graph
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.api.GetSummary(gctx, walletID)
		return err
	})
	g.Go(func() error {
		var err error
		graph, err = s.api.GetGraph(gctx, req)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("%s: %w", op, err)
	}

	return Overview{
		Summary:        summary,
		DisplayBalance: s.formatter.Money(summary.Balance),
		DisplayIncome:  s.formatter.Money(summary.TotalIncome),
		DisplayOutcome: s.formatter.Money(summary.TotalOutcome),
		View:           view,
		Year:           year,
		Years:          availableYears(year, graph),
		Points:         relabel(view, graph.Data),
	}, nil
}

func relabel(view models.GraphView, points []models.GraphPoint) []models.GraphPoint {
	out := make([]models.GraphPoint, len(points))
	for i, p := range points {
		switch view {
		case models.QuartalView:
			if label, ok := quartalLabels[p.Label]; ok {
				p.Label = label
			}
		case models.MonthlyView:
			if r := []rune(p.Label); len(r) > 3 {
				p.Label = string(r[:3])
			}
		}
		out[i] = p
	}
	return out
}

// availableYears is the requested year plus the one the graph reports, newest first.
func availableYears(requested int, graph models.Graph) []int {
	years := []int{requested}
	if len(graph.Data) > 0 && graph.Year != 0 && graph.Year != requested {
		years = append(years, graph.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
