package cart

import "github.com/google/uuid"

// AddItemInput adds a product line to the active cart. Adding a product
// already in the cart merges into the existing line and keeps its original
// price snapshot.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}
