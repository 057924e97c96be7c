package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

func (rt *Router) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := rt.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (rt *Router) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.DocumentsSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := rt.settings.UpdateAll(r.Context(), req); err != nil {
		// A persist failure still applied the update in memory; report it.
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordSettingsUpdate(serviceName, "all")
	}
	writeJSON(w, http.StatusOK, req)
}

func (rt *Router) getSettingsForKind(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseDocumentKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	ds, err := rt.settings.ForKind(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (rt *Router) updateSettingsForKind(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseDocumentKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.DocumentSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := rt.settings.UpdateOne(r.Context(), kind, req); err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordSettingsUpdate(serviceName, string(kind))
	}
	writeJSON(w, http.StatusOK, req)
}

func (rt *Router) getVisibility(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseDocumentKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	visible, err := rt.settings.Visibility(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visible)
}
