package watcher

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipx.app/clipx/internal/entry"
	"go.clipx.app/clipx/internal/history"
	"go.clipx.app/clipx/internal/pasteboard"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setup(t *testing.T) (*pasteboard.Memory, *history.Store, *Watcher, *[]string) {
	t.Helper()
	var previews []string
	pb := pasteboard.NewMemory()
	store := history.New(filepath.Join(t.TempDir(), "history.json"),
		history.WithChangeFunc(func(p string) { previews = append(previews, p) }))
	return pb, store, New(pb, store), &previews
}

func TestPollRecordsTextChange(t *testing.T) {
	pb, store, w, _ := setup(t)

	require.NoError(t, pb.Write(pasteboard.Contents{Text: "copied"}))
	w.Poll()

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, entry.TypeText, snap[0].ContentType)
	assert.Equal(t, "copied", snap[0].TextContent)
}

func TestPollIsIdempotentWithoutChange(t *testing.T) {
	pb, store, w, previews := setup(t)

	require.NoError(t, pb.Write(pasteboard.Contents{Text: "once"}))
	w.Poll()
	w.Poll()
	w.Poll()

	assert.Equal(t, 1, store.Len())
	assert.Len(t, *previews, 1)
}

func TestInitialGenerationIsNotRecorded(t *testing.T) {
	pb := pasteboard.NewMemory()
	require.NoError(t, pb.Write(pasteboard.Contents{Text: "pre-existing"}))

	store := history.New(filepath.Join(t.TempDir(), "history.json"))
	w := New(pb, store)
	w.Poll()

	assert.Zero(t, store.Len())
}

func TestClassification(t *testing.T) {
	img := testPNG(t)
	cases := []struct {
		name     string
		contents pasteboard.Contents
		want     entry.Type
	}{
		{"text only", pasteboard.Contents{Text: "t"}, entry.TypeText},
		{"image only", pasteboard.Contents{Image: img}, entry.TypeImage},
		{"both", pasteboard.Contents{Text: "t", Image: img}, entry.TypeMixed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pb, store, w, _ := setup(t)
			require.NoError(t, pb.Write(tc.contents))
			w.Poll()

			snap := store.Snapshot()
			require.Len(t, snap, 1)
			assert.Equal(t, tc.want, snap[0].ContentType)
		})
	}
}

func TestWhitespaceOnlyTextIgnored(t *testing.T) {
	pb, store, w, previews := setup(t)

	require.NoError(t, pb.Write(pasteboard.Contents{Text: "  \n\t "}))
	w.Poll()

	assert.Zero(t, store.Len())
	assert.Empty(t, *previews)

	// The counter still advanced: the same generation is not re-processed.
	w.Poll()
	assert.Zero(t, store.Len())
}

func TestImageGetsThumbnail(t *testing.T) {
	pb, store, w, _ := setup(t)

	require.NoError(t, pb.Write(pasteboard.Contents{Image: testPNG(t)}))
	w.Poll()

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.NotEmpty(t, snap[0].Thumbnail)
}

func TestBrokenImageKeepsEntryDropsThumbnail(t *testing.T) {
	pb, store, w, _ := setup(t)

	require.NoError(t, pb.Write(pasteboard.Contents{Image: []byte("not a png")}))
	w.Poll()

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, entry.TypeImage, snap[0].ContentType)
	assert.Empty(t, snap[0].Thumbnail)
}

func TestStartStopLifecycle(t *testing.T) {
	_, _, w, _ := setup(t)

	// Stop before any Start is a no-op.
	w.Stop(time.Second)

	w.Start()
	w.Start() // second Start while running is a no-op
	w.Stop(time.Second)
	w.Stop(time.Second) // second Stop after the loop drained is a no-op

	// The watcher restarts cleanly after a full stop.
	w.Start()
	w.Stop(time.Second)
}

func TestDuplicateCopyPromotes(t *testing.T) {
	pb, store, w, _ := setup(t)

	require.NoError(t, pb.Write(pasteboard.Contents{Text: "a"}))
	w.Poll()
	require.NoError(t, pb.Write(pasteboard.Contents{Text: "b"}))
	w.Poll()
	require.NoError(t, pb.Write(pasteboard.Contents{Text: "a"}))
	w.Poll()

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].TextContent)
	assert.Equal(t, "b", snap[1].TextContent)
}
