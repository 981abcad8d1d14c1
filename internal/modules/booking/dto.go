package booking

type CreateRequestInput struct {
	PropertyID int64 `json:"property_id" binding:"required,gt=0"`
}

type DecideInput struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}
