//go:build darwin

package pasteboard

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
// #import <stdlib.h>
//
// long clipx_changeCount(void) {
//     return (long)[[NSPasteboard generalPasteboard] changeCount];
// }
//
// // clipx_readTIFF copies the pasteboard's TIFF representation into a
// // malloc'd buffer. Returns NULL when no TIFF data is present.
// void *clipx_readTIFF(int *outLen) {
//     @autoreleasepool {
//         NSData *d = [[NSPasteboard generalPasteboard] dataForType:NSPasteboardTypeTIFF];
//         if (d == nil || d.length == 0) return NULL;
//         void *buf = malloc(d.length);
//         if (buf == NULL) return NULL;
//         memcpy(buf, d.bytes, d.length);
//         *outLen = (int)d.length;
//         return buf;
//     }
// }
//
// int clipx_hasPNG(void) {
//     @autoreleasepool {
//         NSArray *types = [[NSPasteboard generalPasteboard] types];
//         return [types containsObject:NSPasteboardTypePNG] ? 1 : 0;
//     }
// }
//
// // clipx_write replaces the pasteboard with one generation carrying the
// // given string and/or PNG payload.
// void clipx_write(const char *text, int textLen, const void *png, int pngLen) {
//     @autoreleasepool {
//         NSPasteboard *pb = [NSPasteboard generalPasteboard];
//         [pb clearContents];
//         if (png != NULL && pngLen > 0) {
//             NSData *d = [NSData dataWithBytes:png length:pngLen];
//             [pb setData:d forType:NSPasteboardTypePNG];
//         }
//         if (text != NULL && textLen > 0) {
//             NSString *s = [[NSString alloc] initWithBytes:text length:textLen encoding:NSUTF8StringEncoding];
//             if (s != nil) [pb setString:s forType:NSPasteboardTypeString];
//         }
//     }
// }
import "C"

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"
	"unsafe"

	"golang.design/x/clipboard"
	"golang.org/x/image/tiff"
)

type darwinBackend struct{}

// New returns the macOS pasteboard backend.
// clipboard.Init is called here rather than in init() so that CLI
// sub-commands (history, clear, status) that never touch the pasteboard
// don't log spurious warnings.
func New() (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return &darwinBackend{}, nil
}

func (*darwinBackend) Name() string { return "macOS NSPasteboard" }

func (*darwinBackend) ChangeCount() int64 {
	return int64(C.clipx_changeCount())
}

func (*darwinBackend) Read() (Contents, error) {
	var c Contents

	if text := clipboard.Read(clipboard.FmtText); text != nil {
		c.Text = string(text)
	}

	// Prefer the compressed raster representation; fall back to legacy
	// TIFF, normalising it to PNG so stored bytes are always canonical.
	if C.clipx_hasPNG() == 1 {
		if img := clipboard.Read(clipboard.FmtImage); img != nil {
			c.Image = img
		}
	}
	if c.Image == nil {
		var n C.int
		buf := C.clipx_readTIFF(&n)
		if buf != nil {
			defer C.free(buf)
			raw := C.GoBytes(buf, n)
			converted, err := tiffToPNG(raw)
			if err != nil {
				slog.Warn("tiff conversion failed, skipping image", "err", err)
			} else {
				c.Image = converted
			}
		}
	}

	return c, nil
}

func (*darwinBackend) Write(c Contents) error {
	if c.Empty() {
		return nil
	}
	var (
		textPtr *C.char
		pngPtr  unsafe.Pointer
	)
	if c.Text != "" {
		textPtr = C.CString(c.Text)
		defer C.free(unsafe.Pointer(textPtr))
	}
	if len(c.Image) > 0 {
		pngPtr = C.CBytes(c.Image)
		defer C.free(pngPtr)
	}
	C.clipx_write(textPtr, C.int(len(c.Text)), pngPtr, C.int(len(c.Image)))
	return nil
}

func tiffToPNG(raw []byte) ([]byte, error) {
	img, err := tiff.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode tiff: %w", err)
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}
