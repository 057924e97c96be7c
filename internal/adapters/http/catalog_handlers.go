package httpadapter

import "net/http"

func (rt *Router) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.catalog.Categories())
}

func (rt *Router) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'category' is required"})
		return
	}
	writeJSON(w, http.StatusOK, rt.catalog.ProductsByCategory(category))
}

func (rt *Router) warrantyRegister(w http.ResponseWriter, r *http.Request) {
	data, err := rt.reports.WarrantyRegisterXLSX(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="warranty-register.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
