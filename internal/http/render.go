package http

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"tally/internal/core"
	"tally/internal/log"
)

// layoutFiles are parsed into every page.
var layoutFiles = []string{"templates/layout.html", "templates/partials.html"}

// pageData is what every page template receives.
type pageData struct {
	Title    string
	Nav      string
	User     core.User
	Settings core.UserSettings
	Flash    string
	Error    string
	Data     any
}

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	// withPage rewrites the page parameter of a listing query.
	"withPage": func(q url.Values, page int) string {
		out := url.Values{}
		for k, v := range q {
			out[k] = v
		}
		out.Set("page", strconv.Itoa(page))
		return "?" + out.Encode()
	},
	// dict builds the argument map for partials that need more than one value.
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, errors.New("dict needs key/value pairs")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
	"idStr": func(id int64) string {
		if id == 0 {
			return ""
		}
		return strconv.FormatInt(id, 10)
	},
}

// loadTemplates parses each page together with the shared layout, so every
// page can define its own "content" block.
func loadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(templateFuncs).ParseFS(fsys, layoutFiles...)
	if err != nil {
		return nil, fmt.Errorf("parse layout templates: %w", err)
	}

	pages, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		name := path.Base(p)
		if name == "layout.html" || name == "partials.html" {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(fsys, p); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	t, ok := s.templates[name]
	if !ok {
		s.logger.ErrorContext(r.Context(), "Template not found", "template", name)
		InternalServerError("Page not available").Write(w)
		return
	}

	if data.User.ID == 0 {
		data.User = currentUser(r.Context())
	}
	if data.Settings.ID == 0 && data.User.ID != 0 {
		ctx, cancel := requestContext(r)
		settings, err := s.svc.Settings.Get(ctx, data.User.ID)
		cancel()
		if err != nil {
			s.logger.WarnContext(r.Context(), "Falling back to default settings",
				log.FieldUserID, data.User.ID, log.FieldError, err)
			settings = core.DefaultSettings(data.User.ID)
		}
		data.Settings = settings
	}
	if data.Flash == "" {
		data.Flash = r.URL.Query().Get("flash")
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			"template", name, log.FieldError, err, log.FieldOperation, log.OpRender)
		InternalServerError("Page could not be rendered").Write(w)
		return
	}

	NewHTMXResponse().
		Status(status).
		Header("Content-Type", "text/html; charset=utf-8").
		Body(buf.Bytes()).
		Write(w)
}

// redirect sends the browser to target after a successful form post. htmx
// requests get HX-Redirect since they cannot follow a 303 into a full page.
func redirect(w http.ResponseWriter, r *http.Request, target, flash string) {
	if flash != "" {
		target += "?flash=" + url.QueryEscape(flash)
	}
	if r.Header.Get("HX-Request") == "true" {
		NewHTMXResponse().Header("HX-Redirect", target).TriggerSuccessNotification(flash).Write(w)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
