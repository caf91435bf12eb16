package view

import (
	"fmt"
	"html/template"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/odyssey-erp/scorecard/internal/scoring"
	"github.com/odyssey-erp/scorecard/internal/shared"
	"github.com/odyssey-erp/scorecard/web"
)

// DefaultLocale is used when no locale is configured or it fails to parse.
const DefaultLocale = "ru"

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	printer   *message.Printer
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Data        any
}

// NewEngine parses the embedded templates. Numbers are formatted for locale.
func NewEngine(locale string) (*Engine, error) {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	e := &Engine{printer: message.NewPrinter(tag)}
	funcMap := template.FuncMap{
		"percent":       e.Percent,
		"signedPercent": e.SignedPercent,
		"tone":          scoring.Tone,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	e.templates = tpl
	return e, nil
}

// Percent formats v with one decimal and a percent sign.
func (e *Engine) Percent(v float64) string {
	return e.printer.Sprintf("%.1f%%", v)
}

// SignedPercent is Percent with a leading plus, used for bonuses.
func (e *Engine) SignedPercent(v float64) string {
	return e.printer.Sprintf("+%.1f%%", v)
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
