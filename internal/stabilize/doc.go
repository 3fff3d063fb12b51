// Package stabilize owns the whole-clip stabilization pipeline: raw
// per-frame-pair motion estimation on top of the point tracker, batch
// smoothing of the integrated camera path, and per-pair corrective
// transforms for the external rendering stage.
//
// The smoother is inherently a batch operation: it needs the complete
// raw motion sequence for the window being stabilized and is the one
// synchronization point in the pipeline. Motion analysis across frame
// pairs is embarrassingly parallel and runs on a worker pool.
//
// Failure is represented as data, not errors: wholly-lost frame pairs
// yield zero motion, clips shorter than two frames yield empty motion.
// The only error AnalyzeMotion can return is the context's.
package stabilize
