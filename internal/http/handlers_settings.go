package http

import (
	"net/http"

	"tally/internal/core"
	"tally/internal/log"
)

// settingsView carries the allowed choices for each select.
type settingsView struct {
	Form        core.UserSettings
	Currencies  []string
	Themes      []string
	DateRanges  []string
	ChartTypes  []string
	PageSizes   []int
	DateFormats []string
}

func newSettingsView(form core.UserSettings) settingsView {
	return settingsView{
		Form:        form,
		Currencies:  core.CurrencyCodes,
		Themes:      core.Themes,
		DateRanges:  core.DateRanges,
		ChartTypes:  core.ChartTypes,
		PageSizes:   core.PageSizes,
		DateFormats: core.DateFormats,
	}
}

func (s *Server) handleSettingsForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	settings, err := s.svc.Settings.Get(ctx, currentUser(ctx).ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	s.render(w, r, http.StatusOK, "settings.html", pageData{
		Title:    "Settings",
		Nav:      "settings",
		Settings: settings,
		Data:     newSettingsView(settings),
	})
}

func (s *Server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	current, err := s.svc.Settings.Get(ctx, user.ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	in := ParseSettingsForm(r.PostForm, current)
	if _, err := s.svc.Settings.Update(ctx, user.ID, in); err != nil {
		if core.IsValidation(err) {
			// The page chrome keeps the stored settings; the form shows the input.
			s.render(w, r, http.StatusUnprocessableEntity, "settings.html", pageData{
				Title:    "Settings",
				Nav:      "settings",
				Settings: current,
				Error:    err.Error(),
				Data:     newSettingsView(in),
			})
			return
		}
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	s.logger.InfoContext(ctx, "Settings updated", log.FieldUserID, user.ID)
	redirect(w, r, "/settings", "Settings saved")
}

func (s *Server) handleSettingsReset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	if _, err := s.svc.Settings.Reset(ctx, user.ID); err != nil {
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	s.logger.InfoContext(ctx, "Settings reset", log.FieldUserID, user.ID)
	redirect(w, r, "/settings", "Settings reset to defaults")
}
