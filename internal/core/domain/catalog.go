package domain

// Product is one entry of the read-only catalog collaborator. The warranty
// flow consumes it to default the unit price and to drive category/product
// cascading selection; the catalog itself is not owned by this service.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Orders   int     `json:"orders"`
}
