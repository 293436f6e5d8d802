package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := s.service.Menus(r.Context())
	if err != nil {
		respondServiceError(w, err, "navigation not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"menus": menus,
		"total": len(menus),
	})
}

func (s *Server) handlePrimaryMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := s.service.PrimaryMenus(r.Context())
	if err != nil {
		respondServiceError(w, err, "navigation not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"menus": menus,
	})
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	rootSlug := chi.URLParam(r, "rootSlug")
	menu, err := s.service.Menu(r.Context(), rootSlug)
	if err != nil {
		respondServiceError(w, err, "menu not found")
		return
	}
	respondJSON(w, http.StatusOK, menu)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	plan, err := s.service.Layout(r.Context())
	if err != nil {
		respondServiceError(w, err, "layout not found")
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleBreadcrumb(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	path, err := s.service.Breadcrumb(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "category not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"id":   id,
		"path": path,
	})
}

func (s *Server) handleCategoryOptions(w http.ResponseWriter, r *http.Request) {
	options, err := s.service.CategoryOptions(r.Context())
	if err != nil {
		respondServiceError(w, err, "categories not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"options": options,
		"total":   len(options),
	})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	msgID, err := s.service.RequestRebuild(r.Context(), "admin")
	if err != nil {
		respondServiceError(w, err, "")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":     "queued",
		"message_id": msgID,
	})
}
