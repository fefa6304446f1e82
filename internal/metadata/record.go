package metadata

import "github.com/mediastash/mediastash-backend/pkg/enums"

// Record is one stored media item's metadata, persisted as an element of the
// flat JSON array document. Filename doubles as the record's only key; it is
// never checked for uniqueness.
type Record struct {
	Filename         string          `json:"filename"`
	Title            string          `json:"title"`
	UploaderName     string          `json:"uploaderName"`
	MediaKind        enums.MediaKind `json:"mediaKind"`
	ThumbnailPath    string          `json:"thumbnailPath,omitempty"`
	UploadedAtMillis int64           `json:"uploadedAtMillis"`
}
