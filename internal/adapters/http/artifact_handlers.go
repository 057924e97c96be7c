package httpadapter

import "net/http"

func (rt *Router) getArtifact(w http.ResponseWriter, r *http.Request) {
	art, err := rt.artifacts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, art)
}

func (rt *Router) previewArtifact(w http.ResponseWriter, r *http.Request) {
	art, data, err := rt.artifacts.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordArtifactServed(serviceName, "preview")
	}
	writePDF(w, "inline", art.Filename, data)
}

func (rt *Router) downloadArtifact(w http.ResponseWriter, r *http.Request) {
	art, data, err := rt.artifacts.Download(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordArtifactServed(serviceName, "download")
	}
	writePDF(w, "attachment", art.Filename, data)
}
