package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/maestrofurniture/docgen/internal/core/ports"
	"github.com/maestrofurniture/docgen/internal/observability/metrics"
)

const serviceName = "docgen-api"

type Router struct {
	settings     ports.SettingsService
	warranties   ports.WarrantyService
	certificates ports.CertificateService
	artifacts    ports.ArtifactService
	drafts       ports.DraftService
	reports      ports.ReportService
	catalog      ports.Catalog

	metrics *metrics.HTTPServerMetrics
	traffic TrafficConfig
}

// TrafficConfig tunes the admission middleware. Zero values disable the
// corresponding gate.
type TrafficConfig struct {
	RateLimitRPS        float64
	RateLimitBurst      int
	MaxInFlight         int
	BackpressureMaxWait time.Duration
}

func NewRouter(
	settings ports.SettingsService,
	warranties ports.WarrantyService,
	certificates ports.CertificateService,
	artifacts ports.ArtifactService,
	drafts ports.DraftService,
	reports ports.ReportService,
	catalog ports.Catalog,
	httpMetrics *metrics.HTTPServerMetrics,
	traffic TrafficConfig,
) *Router {
	return &Router{
		settings:     settings,
		warranties:   warranties,
		certificates: certificates,
		artifacts:    artifacts,
		drafts:       drafts,
		reports:      reports,
		catalog:      catalog,
		metrics:      httpMetrics,
		traffic:      traffic,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)

	mux.HandleFunc("GET /v1/settings", rt.getSettings)
	mux.HandleFunc("PUT /v1/settings", rt.updateSettings)
	mux.HandleFunc("GET /v1/settings/{kind}", rt.getSettingsForKind)
	mux.HandleFunc("PUT /v1/settings/{kind}", rt.updateSettingsForKind)
	mux.HandleFunc("GET /v1/settings/{kind}/visibility", rt.getVisibility)

	mux.HandleFunc("POST /v1/warranties", rt.createWarranty)
	mux.HandleFunc("GET /v1/warranties", rt.listWarranties)
	mux.HandleFunc("GET /v1/warranties/{id}", rt.getWarranty)
	mux.HandleFunc("PATCH /v1/warranties/{id}", rt.updateWarranty)
	mux.HandleFunc("POST /v1/warranties/{id}/reopen", rt.reopenWarranty)
	mux.HandleFunc("POST /v1/warranties/{id}/generate", rt.generateCertificate)
	mux.HandleFunc("GET /v1/warranties/{id}/print", rt.printWarranty)

	mux.HandleFunc("GET /v1/artifacts/{id}", rt.getArtifact)
	mux.HandleFunc("GET /v1/artifacts/{id}/preview", rt.previewArtifact)
	mux.HandleFunc("GET /v1/artifacts/{id}/download", rt.downloadArtifact)

	mux.HandleFunc("POST /v1/drafts", rt.createDraft)
	mux.HandleFunc("GET /v1/drafts/{id}", rt.getDraft)
	mux.HandleFunc("PATCH /v1/drafts/{id}", rt.updateDraftHeader)
	mux.HandleFunc("POST /v1/drafts/{id}/items", rt.addDraftItem)
	mux.HandleFunc("PATCH /v1/drafts/{id}/items/{index}", rt.updateDraftItem)
	mux.HandleFunc("DELETE /v1/drafts/{id}/items/{index}", rt.removeDraftItem)

	mux.HandleFunc("GET /v1/catalog/categories", rt.listCategories)
	mux.HandleFunc("GET /v1/catalog/products", rt.listProducts)
	mux.HandleFunc("GET /v1/reports/warranties.xlsx", rt.warrantyRegister)

	var handler http.Handler = mux
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}
	handler = backpressureMiddleware(handler, rt.traffic.MaxInFlight, rt.traffic.BackpressureMaxWait)
	handler = rateLimitMiddleware(handler, rt.traffic.RateLimitRPS, rt.traffic.RateLimitBurst)
	handler = accessLogMiddleware(handler, rt.metrics)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writePDF(w http.ResponseWriter, disposition, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", disposition+`; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
