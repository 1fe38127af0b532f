// Package region implements the region engine's pure building blocks:
// flood-fill extraction of connected pixel sets, 4-connected adjacency
// between sets, and the append-only store of committed regions.
//
// Nothing in this package mutates a buffer. Extraction reads a buffer and
// returns a PixelSet; painting is the caller's job.
package region
