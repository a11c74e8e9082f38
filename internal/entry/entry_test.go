package entry

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualIgnoresTimestampAndThumbnail(t *testing.T) {
	a := Entry{ContentType: TypeText, Timestamp: time.Now(), TextContent: "hello"}
	b := Entry{ContentType: TypeText, Timestamp: time.Now().Add(time.Hour), TextContent: "hello", Thumbnail: []byte{1}}
	assert.True(t, a.Equal(b))

	b.TextContent = "hello "
	assert.False(t, a.Equal(b))
}

func TestEqualComparesImageBytes(t *testing.T) {
	a := Entry{ContentType: TypeImage, ImageData: []byte{0x89, 'P', 'N', 'G'}}
	b := Entry{ContentType: TypeImage, ImageData: []byte{0x89, 'P', 'N', 'G'}}
	assert.True(t, a.Equal(b))

	b.ImageData[3] = 'g'
	assert.False(t, a.Equal(b))

	// Same bytes under a different content type are a different entry.
	c := Entry{ContentType: TypeMixed, ImageData: []byte{0x89, 'P', 'N', 'G'}}
	assert.False(t, a.Equal(c))
}

func TestValid(t *testing.T) {
	assert.False(t, Entry{ContentType: TypeText}.Valid())
	assert.True(t, NewText("x").Valid())
	assert.True(t, NewImage([]byte{1}, nil).Valid())
}

func TestPreviewTruncatesAndFlattens(t *testing.T) {
	e := NewText("line one\nline   two")
	assert.Equal(t, "line one line two", e.Preview())

	long := strings.Repeat("a", 80)
	assert.Len(t, NewText(long).Preview(), PreviewLen)

	assert.Equal(t, "[image]", NewImage([]byte{1}, nil).Preview())
	assert.Equal(t, "[mixed]", Entry{ContentType: TypeMixed, ImageData: []byte{1}}.Preview())
}

func TestJSONRoundTripBase64Image(t *testing.T) {
	ts := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	in := Entry{
		ContentType: TypeMixed,
		Timestamp:   ts,
		TextContent: "screenshot",
		ImageData:   []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a},
		Thumbnail:   []byte{0xff},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	// Image bytes must land as a base64 string, thumbnails must not persist.
	assert.Contains(t, string(raw), `"image_data":"iVBORw0K"`)
	assert.NotContains(t, string(raw), "Thumbnail")

	var out Entry
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, in.Equal(out))
	assert.True(t, out.Timestamp.Equal(ts))
	assert.Nil(t, out.Thumbnail)
}
