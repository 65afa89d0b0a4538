// Package htmlpanel renders the suggestion panel as an HTML fragment. It
// implements the autocomplete View contract: every successful search replaces
// the panel content wholesale, in provider order, and an empty row set leaves
// the panel hidden.
//
// Row elements carry a data-index attribute; the host page routes a
// pointer-down on a row to Controller.Select with that index. Pointer-down
// fires before the input's blur on every mainstream platform, and the
// controller's blur grace period backs that ordering up, so a click on a row
// always wins against the blur-driven close.
package htmlpanel

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

//go:embed templates
var templatesFS embed.FS

const defaultTemplateName = "panel.tmpl"

const (
	defaultPanelClass = "autocomplete-panel"
	defaultListClass  = "autocomplete-list"
	defaultRowClass   = "autocomplete-row"
)

type Option func(*config)

type config struct {
	templates    fs.FS
	templateName string
	policy       *bluemonday.Policy
	themeCfg     *theme.RendererConfig
	logger       zerolog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplateName overrides the panel template file name.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.templateName = trimmed
		}
	}
}

// WithPolicy replaces the sanitizer applied to suggestion labels.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithTheme applies a resolved go-theme renderer configuration: class tokens
// (panel_class, list_class, row_class) and CSS custom properties.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.themeCfg = themeCfg
	}
}

// WithGoTemplateOptions exists for compatibility with the go-template engine
// configuration surface but is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Renderer is a View that keeps the latest rendered panel fragment. It is
// safe for concurrent use with the controller's event handlers.
type Renderer struct {
	template *pongo2.Template
	policy   *bluemonday.Policy
	classes  map[string]string
	cssVars  string
	log      zerolog.Logger

	mu      sync.Mutex
	visible bool
	html    string
}

// Ensure Renderer satisfies the View contract.
var _ autocomplete.View = (*Renderer)(nil)

func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateName: defaultTemplateName,
		logger:       zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templates == nil {
		bundled, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("htmlpanel: open bundled templates: %w", err)
		}
		cfg.templates = bundled
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.StrictPolicy()
	}

	set := pongo2.NewSet("htmlpanel", pongo2.NewFSLoader(cfg.templates))
	tmpl, err := set.FromFile(cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("htmlpanel: load template %q: %w", cfg.templateName, err)
	}

	return &Renderer{
		template: tmpl,
		policy:   cfg.policy,
		classes:  themeClasses(cfg.themeCfg),
		cssVars:  cssVarsStyle(cfg.themeCfg),
		log:      cfg.logger,
	}, nil
}

// ShowRows replaces the panel content with one row per suggestion, in the
// given order. Labels are sanitized to plain text before templating.
func (r *Renderer) ShowRows(rows []autocomplete.Suggestion) {
	if r == nil {
		return
	}
	if len(rows) == 0 {
		r.Hide()
		return
	}

	rendered := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		rendered = append(rendered, map[string]any{
			"index": i,
			"label": r.sanitizeLabel(row.Label),
		})
	}

	fragment, err := r.template.Execute(pongo2.Context{
		"rows":           rendered,
		"panel_class":    r.classes["panel_class"],
		"list_class":     r.classes["list_class"],
		"row_class":      r.classes["row_class"],
		"css_vars_style": r.cssVars,
	})
	if err != nil {
		r.log.Debug().Err(err).Msg("panel template execution failed")
		r.Hide()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.html = fragment
	r.visible = true
}

// Hide empties the panel.
func (r *Renderer) Hide() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.html = ""
	r.visible = false
}

// HTML returns the current panel fragment, empty when hidden.
func (r *Renderer) HTML() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.html
}

// Visible reports whether the panel currently has rendered rows.
func (r *Renderer) Visible() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// sanitizeLabel strips any markup from a provider label, returning plain
// text; the template's own escaping handles the rest.
func (r *Renderer) sanitizeLabel(label string) string {
	return html.UnescapeString(r.policy.Sanitize(label))
}

func themeClasses(cfg *theme.RendererConfig) map[string]string {
	classes := map[string]string{
		"panel_class": defaultPanelClass,
		"list_class":  defaultListClass,
		"row_class":   defaultRowClass,
	}
	if cfg == nil {
		return classes
	}
	for key := range classes {
		if value, ok := cfg.Tokens[key]; ok && strings.TrimSpace(value) != "" {
			classes[key] = strings.TrimSpace(value)
		}
	}
	return classes
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cfg.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}
