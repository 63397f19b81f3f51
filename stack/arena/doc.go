// Package arena provides raw acquisition and release of the contiguous
// memory regions that back a stack's payload and guard words.
//
// On unix platforms a region is an anonymous private mapping, so its base
// address is stable and page-aligned for the region's whole lifetime. On
// other platforms a plain heap slice is used instead.
package arena
