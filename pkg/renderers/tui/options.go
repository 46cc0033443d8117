package tui

import (
	"io"

	"github.com/goliatone/go-wishlist-console/pkg/model"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

// Theme captures optional prefixes applied to printed lines.
type Theme struct {
	FlashPrefix string
	TitlePrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where rendered pages are written.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithForms supplies field constraints used to validate prompt answers.
func WithForms(forms map[surface.Action]model.FormModel) Option {
	return func(s *Session) {
		s.forms = forms
	}
}

// WithPage starts the session from an existing page.
func WithPage(page *surface.Page) Option {
	return func(s *Session) {
		if page != nil {
			s.page = page
		}
	}
}

// WithTheme applies optional line prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.renderer.theme = theme
	}
}

// WithTitle prints title above every page.
func WithTitle(title string) Option {
	return func(s *Session) {
		s.title = title
	}
}
