package dto

import "mediavault/internal/models"

// MediaItem is a media row with its object address resolved to a
// fetchable URL. Resolution is a pure derivation, done at listing time.
type MediaItem struct {
	models.Media
	URL string `json:"url"`
}
