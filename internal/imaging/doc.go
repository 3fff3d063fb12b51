// Package imaging owns the single-channel raster types used by the
// tracking math: grayscale conversion, multi-scale image pyramids, and
// central-difference spatial gradients.
//
// All sampling goes through the border-replicating accessor on GrayImage,
// so callers (pyramid construction, gradient windows, warp sampling) never
// branch on image bounds.
//
// Dependency rule: imaging depends on nothing above it; track and
// stabilize build on imaging, never the reverse.
package imaging
