package server

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-wishlist-console/pkg/render"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

const (
	maxFormBytes = 1 << 20

	flashUnknownAction = "Unknown action"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, http.StatusOK, surface.NewPage())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := parseForm(r); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	page := surface.PageFromValues(r.PostForm)
	action, err := surface.ParseAction(r.PostForm.Get("action"))
	if err != nil {
		page.Flash = flashUnknownAction
		s.metrics.action("unknown", "rejected")
		s.writePage(w, r, http.StatusBadRequest, page)
		return
	}

	if err := s.surface.Do(r.Context(), action, page); err != nil {
		if errors.Is(err, surface.ErrUnknownAction) {
			page.Flash = flashUnknownAction
			s.writePage(w, r, http.StatusBadRequest, page)
			return
		}
		// the client went away; nothing useful to write
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	s.metrics.action(string(action), outcome(page))
	s.writePage(w, r, http.StatusOK, page)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, page *surface.Page) {
	renderer := s.rendererFor(r)
	body, err := renderer.Render(r.Context(), page, render.RenderOptions{
		Title:      s.opts.Title,
		Forms:      s.opts.Forms,
		Theme:      s.opts.Theme,
		FormAction: "/",
	})
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	if s.opts.Renderers != nil {
		w.Header().Add("Vary", "Accept")
	}
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (s *Server) rendererFor(r *http.Request) render.Renderer {
	if s.opts.Renderers == nil {
		return s.renderer
	}
	if alt, ok := s.opts.Renderers.Negotiate(r.Header.Get("Accept")); ok {
		return alt
	}
	return s.renderer
}

func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

func outcome(page *surface.Page) string {
	switch page.Flash {
	case "", surface.FlashSuccess, surface.FlashDeleted:
		return "ok"
	default:
		return "failed"
	}
}
