package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

func (rt *Router) createWarranty(w http.ResponseWriter, r *http.Request) {
	rec, err := rt.warranties.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (rt *Router) listWarranties(w http.ResponseWriter, r *http.Request) {
	records, err := rt.warranties.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (rt *Router) getWarranty(w http.ResponseWriter, r *http.Request) {
	rec, err := rt.warranties.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (rt *Router) updateWarranty(w http.ResponseWriter, r *http.Request) {
	var patch domain.WarrantyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	rec, err := rt.warranties.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (rt *Router) reopenWarranty(w http.ResponseWriter, r *http.Request) {
	rec, err := rt.warranties.Reopen(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// generateCertificate queues an async render and answers 202 with the
// pending artifact handle.
func (rt *Router) generateCertificate(w http.ResponseWriter, r *http.Request) {
	art, err := rt.certificates.Generate(r.Context(), r.PathValue("id"))
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordRenderRequested(serviceName, "rejected")
		}
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordRenderRequested(serviceName, "queued")
	}
	writeJSON(w, http.StatusAccepted, art)
}

// printWarranty serves the latest ready artifact inline, rendering one
// synchronously when the record has never been rendered.
func (rt *Router) printWarranty(w http.ResponseWriter, r *http.Request) {
	art, data, err := rt.artifacts.PrintWarranty(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordArtifactServed(serviceName, "print")
	}
	writePDF(w, "inline", art.Filename, data)
}
