package catalog

type CreateListingInput struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Address       string  `json:"address" binding:"required"`
	City          string  `json:"city" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	AvailableFrom string  `json:"available_from" binding:"required"` // YYYY-MM-DD
}

type UpdateListingInput struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Address       *string  `json:"address"`
	City          *string  `json:"city"`
	Price         *float64 `json:"price"`
	AvailableFrom *string  `json:"available_from"`
}
