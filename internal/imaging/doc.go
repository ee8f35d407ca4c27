// Package imaging provides the pixel-level operations behind lane detection.
//
// This package implements frame loading and caching, Canny edge detection into
// a binary EdgeMap, clipped line rasterization for overlays, color parsing, and
// PNG encoding of results. All operations work with standard Go image.Image
// types and use a coordinate system where (0,0) is at the top-left corner,
// X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - EdgeMap coordinates are relative to the map; EdgeMap.Origin is the
//     Min point of the source image bounds
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Canny and EncodePNG are
// stateless and can be called concurrently on different images. DrawLine
// mutates its destination; two goroutines must not draw on the same image.
//
// # Edge Thresholds
//
// Canny thresholds are expressed in gradient units of 0-255 intensities and
// compared against the L1 magnitude |Gx| + |Gy| unless CannyParams.L2Gradient
// is set. This matches cv::Canny with L2gradient=false, so the conventional
// 50/150 pair carries over. L2 magnitudes are up to 1.41x smaller on
// diagonal edges.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Nil or empty images (ErrInvalidImage)
//   - Unsupported aperture sizes or inverted thresholds (ErrInvalidParams)
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
