// Package entry defines the clipboard history record shared by the watcher,
// the history store, the popup, and the IPC protocol.
//
// Entries serialise to JSON with base64-encoded image payloads so that binary
// content is safe to embed in the history file and in IPC messages. The same
// encoding is used on disk and on the IPC socket: one schema, one codec.
package entry

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Type classifies what an entry carries.
type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeMixed Type = "mixed"
)

// PreviewLen is the maximum rune length of a change-notification preview.
const PreviewLen = 50

// Entry is a single clipboard history record. At least one of TextContent
// and ImageData must be set for the entry to be valid. ImageData is always
// canonical PNG regardless of the pasteboard format it was captured from.
//
// The JSON field names and the RFC 3339 timestamp are the on-disk history
// format; encoding/json base64-encodes ImageData automatically.
type Entry struct {
	ContentType Type      `json:"content_type"`
	Timestamp   time.Time `json:"timestamp"`
	TextContent string    `json:"text_content,omitempty"`
	ImageData   []byte    `json:"image_data,omitempty"`

	// Thumbnail is derived from ImageData and regenerable; it is never
	// persisted and never participates in equality.
	Thumbnail []byte `json:"-"`
}

// NewText returns a text entry stamped with now.
func NewText(text string) Entry {
	return Entry{ContentType: TypeText, Timestamp: time.Now(), TextContent: text}
}

// NewImage returns an image entry stamped with now. png must be canonical PNG.
func NewImage(png, thumb []byte) Entry {
	return Entry{ContentType: TypeImage, Timestamp: time.Now(), ImageData: png, Thumbnail: thumb}
}

// NewMixed returns an entry carrying both text and an image.
func NewMixed(text string, png, thumb []byte) Entry {
	return Entry{ContentType: TypeMixed, Timestamp: time.Now(), TextContent: text, ImageData: png, Thumbnail: thumb}
}

// Valid reports whether the entry carries any content.
func (e Entry) Valid() bool {
	return e.TextContent != "" || len(e.ImageData) > 0
}

// HasImage reports whether the entry carries image bytes.
func (e Entry) HasImage() bool { return len(e.ImageData) > 0 }

// Equal reports whether two entries are identical: same content type, same
// text, and byte-for-byte identical image payloads. Timestamps and thumbnails
// are ignored; this is the deduplication identity.
func (e Entry) Equal(o Entry) bool {
	return e.ContentType == o.ContentType &&
		e.TextContent == o.TextContent &&
		bytes.Equal(e.ImageData, o.ImageData)
}

// Preview returns a short single-line description of the entry for change
// notifications and logs: the first PreviewLen runes of the text, or a type
// tag like "[image]" when there is no text.
func (e Entry) Preview() string {
	if e.TextContent == "" {
		return fmt.Sprintf("[%s]", e.ContentType)
	}
	s := strings.Join(strings.Fields(e.TextContent), " ")
	if utf8.RuneCountInString(s) <= PreviewLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:PreviewLen])
}
