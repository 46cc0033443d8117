package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goliatone/go-wishlist-console/pkg/model"
	"github.com/goliatone/go-wishlist-console/pkg/render"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

const quitOption = "Quit"

// Session is an interactive terminal console over one Page.
type Session struct {
	surface  *surface.Surface
	driver   PromptDriver
	renderer *Renderer
	forms    map[surface.Action]model.FormModel
	page     *surface.Page
	out      io.Writer
	title    string
}

// NewSession binds a session to s. Without WithPromptDriver the session
// prompts on the terminal through survey.
func NewSession(s *surface.Surface, options ...Option) (*Session, error) {
	if s == nil {
		return nil, errors.New("tui: surface is required")
	}
	session := &Session{
		surface:  s,
		renderer: NewRenderer(Theme{}),
		page:     surface.NewPage(),
		out:      os.Stdout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(session)
	}
	if session.driver == nil {
		session.driver = NewSurveyDriver(session.out)
	}
	return session, nil
}

// Page returns a copy of the page the session works on.
func (s *Session) Page() *surface.Page {
	return s.page.Clone()
}

// Run offers actions until the user quits, aborts or ctx is done. Quitting
// is not an error.
func (s *Session) Run(ctx context.Context) error {
	for {
		err := s.Next(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrQuit):
			return nil
		default:
			return err
		}
	}
}

// Next asks for one action, runs it and prints the page.
func (s *Session) Next(ctx context.Context) error {
	actions := surface.Actions()
	options := make([]string, 0, len(actions)+1)
	for _, action := range actions {
		options = append(options, action.Label())
	}
	options = append(options, quitOption)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Action",
		Options:      options,
		DefaultIndex: 0,
		PageSize:     len(options),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: invalid selection %d", idx)
	}
	if idx == len(actions) {
		return ErrQuit
	}
	return s.Step(ctx, actions[idx], true)
}

// Step runs action. When prompt is true the fields the action reads are asked
// first, defaulting to the current page values.
func (s *Session) Step(ctx context.Context, action surface.Action, prompt bool) error {
	if prompt {
		if err := s.promptFields(ctx, action); err != nil {
			return err
		}
	}
	if err := s.surface.Do(ctx, action, s.page); err != nil {
		return err
	}
	return s.Print(ctx)
}

// Print writes the current page.
func (s *Session) Print(ctx context.Context) error {
	out, err := s.renderer.Render(ctx, s.page, render.RenderOptions{Title: s.title})
	if err != nil {
		return err
	}
	_, err = s.out.Write(out)
	return err
}

func (s *Session) promptFields(ctx context.Context, action surface.Action) error {
	form, hasForm := s.forms[action]
	for _, binding := range action.Bindings() {
		field := model.Field{
			Name:    binding.Property,
			Element: binding.Element,
			Type:    binding.Type,
			Label:   binding.Label,
		}
		if hasForm {
			if built, ok := form.Field(binding.Element); ok {
				field = built
			}
		}

		if field.Type == model.FieldTypeBoolean {
			answer, err := s.driver.Confirm(ctx, ConfirmConfig{
				Message: field.Label,
				Default: s.page.Enabled(),
				Help:    field.Description,
			})
			if err != nil {
				return err
			}
			s.page.Set(field.Element, strconv.FormatBool(answer))
			continue
		}

		answer, err := s.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Default:   s.page.Get(field.Element),
			Help:      field.Description,
			Validator: field.Check,
		})
		if err != nil {
			return err
		}
		s.page.Set(field.Element, answer)
	}
	return nil
}
