package http

import (
	"bytes"
	"errors"
	"net/http"

	"tally/internal/charts"
	"tally/internal/core"
	"tally/internal/log"
)

type dashboardView struct {
	Overview core.Overview
	Range    string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	settings, err := s.svc.Settings.Get(ctx, user.ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	now := s.now()
	overview, err := s.svc.Aggregation.Overview(ctx, user.ID, now, core.PeriodForRange(settings.DefaultDateRange, now))
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}

	s.render(w, r, http.StatusOK, "dashboard.html", pageData{
		Title:    "Dashboard",
		Nav:      "dashboard",
		User:     user,
		Settings: settings,
		Data:     dashboardView{Overview: overview, Range: settings.DefaultDateRange},
	})
}

func (s *Server) handleSampleData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	ids, err := s.svc.Expenses.SampleData(ctx, user.ID, s.now())
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}
	s.logger.InfoContext(ctx, "Sample data created",
		log.FieldUserID, user.ID, log.FieldRows, len(ids))
	redirect(w, r, "/", "Sample data added")
}

type amountJSON struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type dailyJSON struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type dashboardStatsJSON struct {
	MonthlyTotal      float64      `json:"monthly_total"`
	RecentTotal       float64      `json:"recent_total"`
	CategoryBreakdown []amountJSON `json:"category_breakdown"`
	DailyExpenses     []dailyJSON  `json:"daily_expenses"`
}

func (s *Server) handleAPIDashboardStats(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := s.svc.Aggregation.DashboardStats(ctx, currentUser(ctx).ID, s.now())
	if err != nil {
		s.writeAPIError(w, r, log.OpRead, err)
		return
	}

	out := dashboardStatsJSON{
		MonthlyTotal:      stats.MonthlyTotal.Major(),
		RecentTotal:       stats.RecentTotal.Major(),
		CategoryBreakdown: make([]amountJSON, 0, len(stats.CategoryBreakdown)),
		DailyExpenses:     make([]dailyJSON, 0, len(stats.DailyExpenses)),
	}
	for _, c := range stats.CategoryBreakdown {
		out.CategoryBreakdown = append(out.CategoryBreakdown, amountJSON{Name: c.Name, Total: c.Amount.Major()})
	}
	for _, d := range stats.DailyExpenses {
		out.DailyExpenses = append(out.DailyExpenses, dailyJSON{Date: d.Date.String(), Total: d.Amount.Major()})
	}
	NewHTMXResponse().JSON(out).Write(w)
}

func (s *Server) handleAPICustomRange(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	q := r.URL.Query()
	total, err := s.svc.Aggregation.CustomRangeTotal(ctx, currentUser(ctx).ID, q.Get("date_from"), q.Get("date_to"))
	if err != nil {
		s.writeAPIError(w, r, log.OpRead, err)
		return
	}
	NewHTMXResponse().JSON(map[string]float64{"total": total.Major()}).Write(w)
}

func (s *Server) handleAPIMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	trend, err := s.svc.Aggregation.MonthlyTrend(ctx, currentUser(ctx).ID, s.now())
	if err != nil {
		s.writeAPIError(w, r, log.OpRead, err)
		return
	}

	type monthJSON struct {
		Month string  `json:"month"`
		Total float64 `json:"total"`
	}
	out := make([]monthJSON, 0, len(trend))
	for _, m := range trend {
		out = append(out, monthJSON{Month: m.Label(), Total: m.Amount.Major()})
	}
	NewHTMXResponse().JSON(out).Write(w)
}

func (s *Server) handleAPICategoryComparison(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := s.svc.Aggregation.CategoryComparison(ctx, currentUser(ctx).ID, s.now())
	if err != nil {
		s.writeAPIError(w, r, log.OpRead, err)
		return
	}

	type comparisonJSON struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
		Count int     `json:"count"`
	}
	out := make([]comparisonJSON, 0, len(stats))
	for _, c := range stats {
		out = append(out, comparisonJSON{Name: c.Name, Total: c.Amount.Major(), Count: c.Count})
	}
	NewHTMXResponse().JSON(out).Write(w)
}

// handleCategoryChart draws the breakdown for ?range=, defaulting to the
// user's preferred range.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	settings, err := s.svc.Settings.Get(ctx, user.ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRender, err)
		return
	}
	rangeName := r.URL.Query().Get("range")
	if rangeName == "" {
		rangeName = settings.DefaultDateRange
	}
	breakdown, err := s.svc.Aggregation.CategoryBreakdown(ctx, user.ID, core.PeriodForRange(rangeName, s.now()))
	if err != nil {
		s.writeServiceError(w, r, log.OpRender, err)
		return
	}

	var buf bytes.Buffer
	s.writeChart(w, r, &buf, charts.NewGenerator(settings).Categories(&buf, breakdown))
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	settings, err := s.svc.Settings.Get(ctx, user.ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRender, err)
		return
	}
	trend, err := s.svc.Aggregation.MonthlyTrend(ctx, user.ID, s.now())
	if err != nil {
		s.writeServiceError(w, r, log.OpRender, err)
		return
	}

	var buf bytes.Buffer
	s.writeChart(w, r, &buf, charts.NewGenerator(settings).Trend(&buf, trend))
}

// writeChart sends a rendered PNG. An empty chart is 204 so the page can
// hide the image.
func (s *Server) writeChart(w http.ResponseWriter, r *http.Request, buf *bytes.Buffer, err error) {
	switch {
	case errors.Is(err, charts.ErrNoData):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Chart rendering failed", log.FieldError, err, log.FieldOperation, log.OpRender)
		InternalServerError("Chart could not be rendered").Write(w)
	default:
		NewHTMXResponse().
			Header("Content-Type", "image/png").
			Header("Cache-Control", "private, no-store").
			Body(buf.Bytes()).
			Write(w)
	}
}
