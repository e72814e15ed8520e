// Package filter provides the blur and shadow effects used by the chart
// rasterizer.
//
// Filters read shape coverage from the alpha channel of a source pixmap
// (usually an off-screen mask) and composite a tinted, blurred copy onto a
// destination pixmap. They implement [scene.Filter] so they can also be used
// in gg scene filter chains.
//
// Blur radii follow the HTML canvas shadowBlur convention: the Gaussian
// standard deviation is half of the blur value.
package filter
