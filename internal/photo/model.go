package photo

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("photo not found")
	ErrNotOwner = errors.New("only the item owner may manage its photos")
	ErrNotImage = errors.New("uploaded file is not an image")
	ErrNoThumb  = errors.New("thumbnail not available for this photo")
)

// Photo is an image attached to a listed item.
type Photo struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	UploaderID    string    `json:"uploader_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// PhotoURL returns the public URL for accessing a photo by its ID.
func PhotoURL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for accessing a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
