package models

// Cart is the full snapshot shape the commerce backend returns for every
// cart operation. The backend computes TotalPrice; the gateway never derives
// it from the lines, so the two may disagree until the next fetch.
type Cart struct {
	UserID     string     `json:"userId,omitempty"`
	GuestID    string     `json:"guestId,omitempty"`
	Products   []CartLine `json:"products"`
	TotalPrice float64    `json:"totalPrice"`
}

// CartLine is one product entry within a cart. Name, Image and Price are a
// display snapshot captured when the line was added, not live product data.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// EmptyCart is the normalized form of "no cart record upstream".
func EmptyCart() *Cart {
	return &Cart{Products: []CartLine{}, TotalPrice: 0}
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Products) == 0
}
