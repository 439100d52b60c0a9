// Package handler contains the HTTP request handlers. Handlers parse
// requests, call the service layer, and write responses — redirects with
// flash notices for the form flows, rendered templates for the pages.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/game-arcade/internal/session"
)

// pageNames are the content templates, each paired with base.html.
var pageNames = []string{"register", "login", "home", "game"}

// Templates holds the parsed page templates, one compiled set per page.
//
// Every page defines a "content" block that base.html pulls in, so the pages
// cannot all be parsed into a single template set — the definitions would
// collide. Parsing base+page per page at startup keeps rendering cheap and
// fails fast on a broken template file.
type Templates struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// LoadTemplates parses base.html together with each page template in dir.
func LoadTemplates(dir string, logger *slog.Logger) (*Templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFiles(
			filepath.Join(dir, "base.html"),
			filepath.Join(dir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Templates{pages: pages, logger: logger}, nil
}

// render executes the named page inside the base layout. The pending flash
// notice, if any, is popped into the template data here so every page shows
// it exactly once.
func (t *Templates) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	tmpl, ok := t.pages[name]
	if !ok {
		t.logger.Error("unknown template", slog.String("name", name))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	data["Flash"] = session.PopFlash(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		t.logger.Error("failed to render template",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// redirectWithFlash stores a one-time notice and redirects the browser.
// Validation problems in the form flows always take this path — a notice and
// another chance, never an error status.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, url, message string) {
	session.SetFlash(w, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
