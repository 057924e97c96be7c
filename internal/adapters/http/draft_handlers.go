package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

// draftResponse pairs a draft with its derived summary; the aggregate is
// recomputed server-side on every response.
type draftResponse struct {
	Draft   *domain.DocumentDraft `json:"draft"`
	Summary domain.Aggregate      `json:"summary"`
}

func (rt *Router) createDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	kind, err := domain.ParseDocumentKind(req.Kind)
	if err != nil {
		writeError(w, err)
		return
	}

	draft, err := rt.drafts.Create(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draftResponse{Draft: draft})
}

func (rt *Router) getDraft(w http.ResponseWriter, r *http.Request) {
	draft, agg, err := rt.drafts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: agg})
}

func (rt *Router) updateDraftHeader(w http.ResponseWriter, r *http.Request) {
	var patch domain.DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	draft, agg, err := rt.drafts.UpdateHeader(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: agg})
}

func (rt *Router) addDraftItem(w http.ResponseWriter, r *http.Request) {
	draft, agg, err := rt.drafts.AddItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: agg})
}

func (rt *Router) updateDraftItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item index must be an integer"})
		return
	}

	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	field, err := domain.ParseItemField(req.Field)
	if err != nil {
		writeError(w, err)
		return
	}

	draft, agg, err := rt.drafts.UpdateItem(r.Context(), r.PathValue("id"), index, field, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: agg})
}

func (rt *Router) removeDraftItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item index must be an integer"})
		return
	}

	draft, agg, err := rt.drafts.RemoveItem(r.Context(), r.PathValue("id"), index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, Summary: agg})
}
