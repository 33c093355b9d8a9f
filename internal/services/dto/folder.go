package dto

// CreateFolderRequest is the JSON body for folder creation.
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

// HoverRequest points the transient hover affordance at one item,
// or clears it when item_id is empty.
type HoverRequest struct {
	ItemID string `json:"item_id"`
}
