package enums

import (
	"fmt"
	"strings"
)

// MediaKind classifies an uploaded file as video or audio.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

var validMediaKinds = []MediaKind{
	MediaKindVideo,
	MediaKindAudio,
}

// String returns the literal string for the kind.
func (m MediaKind) String() string {
	return string(m)
}

// Dir returns the storage directory name for the kind.
func (m MediaKind) Dir() string {
	if m == MediaKindVideo {
		return "videos"
	}
	return "audios"
}

// IsValid reports whether the kind is known.
func (m MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// ClassifyMediaKind derives a kind from the declared content type.
// Classification is binary: anything without a video prefix is audio,
// images and other non-media types included.
func ClassifyMediaKind(contentType string) MediaKind {
	if strings.HasPrefix(strings.TrimSpace(contentType), "video") {
		return MediaKindVideo
	}
	return MediaKindAudio
}

// ParseMediaDir maps a listing path segment (videos, audios) to its kind.
func ParseMediaDir(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if candidate.Dir() == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q", value)
}
