// Package detection surveys a map before anyone paints it.
//
// DetectRegions flood-fills every pixel of a source buffer to enumerate the
// candidate regions a user could click, and records which of them share a
// border. The result answers questions the interactive engine cannot: how
// many paintable regions the map has, where their centers are, and how many
// palette colors a full coloring is likely to need.
//
// # Algorithm Overview
//
//  1. Scan pixels row-major; each pixel not yet labeled seeds a flood fill
//     with the same tolerance the engine uses.
//  2. Components below the minimum size (border lines, specks) are counted
//     but not reported as candidates.
//  3. Candidates sharing a 4-connected edge become neighbors.
//  4. A largest-degree-first greedy coloring gives an upper bound on the
//     number of colors required.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Limitations
//
// Tolerance is measured against each component's seed color, so on smooth
// gradients the split into components depends on scan order. Maps with flat
// fills and dark outlines, which is what the engine is built for, are not
// affected.
package detection
