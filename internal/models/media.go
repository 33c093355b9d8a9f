package models

// MediaKind is fixed once at upload time from the declared content type.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Media is one metadata row per stored blob. StorageKey must always
// reference a live blob; the upload and delete pipelines enforce that
// ordering procedurally.
type Media struct {
	BaseModel
	StorageKey string    `gorm:"not null;uniqueIndex" json:"storage_key"`
	FolderID   *string   `gorm:"type:uuid;index" json:"folder_id"` // nil means top-level / unfiled
	Owner      string    `gorm:"not null;index" json:"owner"`
	Kind       MediaKind `gorm:"not null" json:"kind"`
}
