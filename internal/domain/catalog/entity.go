// internal/domain/catalog/entity.go
package catalog

// Catalog records are read-only from this layer's perspective; they are
// owned by an external catalog management process.

// Item is one sellable product.
type Item struct {
	ID              string   `json:"id" firestore:"-"`
	Title           string   `json:"title" firestore:"title"`
	Description     string   `json:"description" firestore:"description"`
	Price           float64  `json:"price" firestore:"price"`
	OldPrice        float64  `json:"oldPrice" firestore:"oldPrice"`
	Rating          float64  `json:"rating" firestore:"rating"`
	CategoryID      string   `json:"categoryId" firestore:"categoryId"`
	PicURLs         []string `json:"picUrl" firestore:"picUrl"`
	Models          []string `json:"model" firestore:"model"`
	ShowRecommended bool     `json:"showRecommended" firestore:"showRecommended"`
}

// Category groups items on the storefront.
type Category struct {
	ID     string `json:"id" firestore:"id"`
	Title  string `json:"title" firestore:"title"`
	PicURL string `json:"picUrl" firestore:"picUrl"`
}

// Banner is a promotional slider entry.
type Banner struct {
	URL string `json:"url" firestore:"url"`
}
