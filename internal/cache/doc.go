// Package cache provides the small access-ordered cache shared by the
// blur kernels and the glyph images of a chart.
//
//	c := cache.New[string, *image.NRGBA](64)
//	img := c.GetOrCreate("A", render)
//
// A Cache holds at most its soft limit of entries. When an insertion goes
// past the limit, the least recently used quarter is evicted.
package cache
