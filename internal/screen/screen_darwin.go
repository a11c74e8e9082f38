//go:build darwin

package screen

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework AppKit
// #import <AppKit/AppKit.h>
//
// typedef struct {
//     double fx, fy, fw, fh; // frame
//     double vx, vy, vw, vh; // visibleFrame
// } clipx_screen;
//
// int clipx_listScreens(clipx_screen *out, int max) {
//     @autoreleasepool {
//         NSArray<NSScreen *> *screens = [NSScreen screens];
//         int n = (int)MIN((NSUInteger)max, screens.count);
//         for (int i = 0; i < n; i++) {
//             NSRect f = screens[i].frame;
//             NSRect v = screens[i].visibleFrame;
//             out[i] = (clipx_screen){
//                 f.origin.x, f.origin.y, f.size.width, f.size.height,
//                 v.origin.x, v.origin.y, v.size.width, v.size.height,
//             };
//         }
//         return n;
//     }
// }
import "C"

const maxScreens = 16

// List returns the attached displays, primary first.
func List() []Screen {
	var raw [maxScreens]C.clipx_screen
	n := int(C.clipx_listScreens(&raw[0], maxScreens))
	out := make([]Screen, 0, n)
	for i := 0; i < n; i++ {
		s := raw[i]
		out = append(out, Screen{
			Frame:   Rect{X: float64(s.fx), Y: float64(s.fy), Width: float64(s.fw), Height: float64(s.fh)},
			Visible: Rect{X: float64(s.vx), Y: float64(s.vy), Width: float64(s.vw), Height: float64(s.vh)},
		})
	}
	return out
}
