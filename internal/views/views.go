// Package views renders the server-side HTML pages. Every page is parsed
// together with the shared layout and component templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/timeline-dev/timelines/internal/forms"
	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

//go:embed templates
var files embed.FS

var shared = []string{"templates/layout.html", "templates/components.html"}

// Pages maps a render name to its template file under templates/.
var Pages = map[string]string{
	"login":            "auth/login.html",
	"join":             "auth/join.html",
	"timelines/index":  "timelines/index.html",
	"timelines/new":    "timelines/new.html",
	"timelines/edit":   "timelines/edit.html",
	"timelines/show":   "timelines/show.html",
	"events/form":      "events/form.html",
	"locations/index":  "locations/index.html",
	"locations/form":   "locations/form.html",
	"people/index":     "people/index.html",
	"people/form":      "people/form.html",
	"errors/not_found": "errors/not_found.html",
	"errors/error":     "errors/error.html",
}

type NavItem struct {
	Name   string
	To     string
	Active bool
}

type Tab struct {
	Name   string
	To     string
	Active bool
}

// Page is the data every template receives.
type Page struct {
	Title          string
	Description    string
	ShowBackButton bool
	BackURL        string
	UserEmail      string
	Nav            []NavItem
	Tabs           []Tab
	Values         map[string]string
	Errors         forms.Errors
	Focus          string
	Flash          string
	Data           any
}

// Navigation returns the sidebar items with the one matching currentPath marked active.
func Navigation(currentPath string) []NavItem {
	items := []NavItem{
		{Name: "Timelines", To: "/timelines"},
		{Name: "Places", To: "/locations"},
		{Name: "People", To: "/people"},
	}

	for i := range items {
		items[i].Active = currentPath == items[i].To ||
			strings.HasPrefix(currentPath, items[i].To+"/") ||
			(items[i].To == "/timelines" && strings.HasPrefix(currentPath, "/timeline/"))
	}

	return items
}

// TimelineTabs returns the events/places/people tabs of a timeline.
func TimelineTabs(timelineID uint, active string) []Tab {
	base := fmt.Sprintf("/timeline/%d/", timelineID)
	tabs := []Tab{
		{Name: "Events", To: base + "events"},
		{Name: "Places", To: base + "places"},
		{Name: "People", To: base + "people"},
	}

	for i := range tabs {
		tabs[i].Active = strings.EqualFold(tabs[i].Name, active)
	}

	return tabs
}

// Field is the input model of the textfield and textarea components.
type Field struct {
	ID          string
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Error       string
	Required    bool
	Autofocus   bool
	Rows        int
	Options     []Option
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

var funcs = template.FuncMap{
	"field": func(name, label string, p Page) Field {
		f := Field{ID: name, Name: name, Label: label, Type: "text", Rows: 4}
		if p.Values != nil {
			f.Value = p.Values[name]
		}
		f.Error = p.Errors.First(name)
		f.Autofocus = p.Focus == name
		return f
	},
	"withType": func(t string, f Field) Field {
		f.Type = t
		return f
	},
	"withPlaceholder": func(placeholder string, f Field) Field {
		f.Placeholder = placeholder
		return f
	},
	"required": func(f Field) Field {
		f.Required = true
		return f
	},
	"withOptions": func(options []Option, f Field) Field {
		for i := range options {
			options[i].Selected = options[i].Value == f.Value
		}
		f.Options = options
		return f
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"date": func(v any) string {
		switch d := v.(type) {
		case time.Time:
			return d.Format(DateLayout)
		case datatypes.Date:
			return time.Time(d).Format(DateLayout)
		}
		return ""
	},
}

// NewRenderer parses every page into a gin HTML renderer.
func NewRenderer() (multitemplate.Render, error) {
	r := multitemplate.New()

	for name, file := range Pages {
		tmpl, err := parse(file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
	}

	return r, nil
}

func parse(file string) (*template.Template, error) {
	patterns := append(append([]string{}, shared...), path.Join("templates", file))
	return template.New(path.Base(shared[0])).Funcs(funcs).ParseFS(files, patterns...)
}
