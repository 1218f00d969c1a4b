// Package filter implements the unsharp mask used by the sharpen node.
//
// The transform is pure: the source image is never written to and every call allocates its own buffers, so
// UnsharpMask may run concurrently on independent images. Pixels travel through the filter as 8-bit RGB, get
// blurred while still 8-bit, and are only then normalized to float32 in [0, 1] for the sharpening arithmetic.
// The original color mode and alpha channel are restored on the way out.
package filter
