package entity

// Wishlists maps a user id to the product snapshots they saved, in the order
// they were added.
type Wishlists map[string][]Product

func (w Wishlists) Contains(userID, productID string) bool {
	for _, p := range w[userID] {
		if p.ID == productID {
			return true
		}
	}
	return false
}
