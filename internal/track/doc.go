// Package track owns sparse feature tracking between adjacent frames:
// the pyramidal Lucas-Kanade point tracker, the planar (homography)
// tracker built on top of it, and the FeatureTracker capability
// interface shared by both.
//
// Tracking never raises a hard error. Numerical degeneracies inside the
// iterative solve (near-singular gradient matrices, divergence, points
// refined out of bounds) are absorbed into the per-point lost flag; the
// caller recovers by re-seeding points.
//
// Dependency rule: track may depend on imaging, never on stabilize.
package track
