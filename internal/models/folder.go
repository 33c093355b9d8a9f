package models

// Folder is a flat, per-owner grouping of media items. Folders do not nest.
type Folder struct {
	BaseModel
	Name  string `gorm:"not null" json:"name"`
	Owner string `gorm:"not null;index" json:"owner"`
}
