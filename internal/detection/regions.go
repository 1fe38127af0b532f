package detection

import (
	"sort"

	"github.com/ironsheep/mapcolor-mcp/internal/imaging"
	"github.com/ironsheep/mapcolor-mcp/internal/region"
)

// Candidate describes one paintable region of a source map.
type Candidate struct {
	// Index identifies the candidate within a RegionsResult. Candidates are
	// numbered in scan order of their seeds.
	Index int `json:"index"`

	// Seed is the first pixel of the region in row-major order; clicking it
	// selects the region.
	Seed imaging.Point `json:"seed"`

	// Bounds is the bounding box enclosing the region.
	Bounds region.Bounds `json:"bounds"`

	// Centroid is the floor-averaged center of the region's pixels.
	Centroid imaging.Point `json:"centroid"`

	// PixelCount is the region's area in pixels.
	PixelCount int `json:"pixel_count"`

	// FillColor is the hex color at the seed.
	FillColor string `json:"fill_color"`
}

// RegionsResult contains the census of a map.
type RegionsResult struct {
	// Regions lists candidates sorted by area (largest first).
	Regions []Candidate `json:"regions"`

	// Count is the number of candidates.
	Count int `json:"count"`

	// Fragments counts components rejected for being below the minimum
	// size, typically pieces of border lines.
	Fragments int `json:"fragments"`

	// Neighbors lists pairs of candidate indexes whose regions share an
	// edge. Each pair is ordered (low, high) and the list is sorted.
	Neighbors [][2]int `json:"neighbors"`

	// ColorsNeeded is an upper bound on the number of colors a valid full
	// coloring needs, from a greedy coloring of the neighbor graph.
	ColorsNeeded int `json:"colors_needed"`

	// Suggested maps candidate index to a color slot (0-based) from that
	// greedy coloring. Slot numbers can be used as palette indexes.
	Suggested map[int]int `json:"suggested"`
}

// DetectRegions enumerates the candidate regions of buf.
//
// Parameters:
//   - buf: Source map. It is not modified.
//   - tolerance: Per-channel flood-fill tolerance, as used by the engine.
//   - minPixels: Components smaller than this are counted as fragments.
//
// Returns the census. Cost is O(width × height) plus the neighbor scan.
func DetectRegions(buf *imaging.Buffer, tolerance, minPixels int) *RegionsResult {
	width, height := buf.Width(), buf.Height()
	labels := make([]int, width*height)
	for i := range labels {
		labels[i] = -1
	}

	// fragments keep label -2 so they never count as neighbors
	const fragment = -2

	extractor := region.NewExtractor(buf, tolerance)
	candidates := make([]Candidate, 0)
	fragments := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if labels[y*width+x] != -1 {
				continue
			}
			seed := imaging.Point{X: x, Y: y}
			pixels, err := extractor.Extract(seed)
			if err != nil || pixels.Len() == 0 {
				labels[y*width+x] = fragment
				fragments++
				continue
			}

			// Keep only pixels not already claimed by an earlier component.
			owned := region.NewPixelSet()
			for p := range pixels {
				if labels[p.Y*width+p.X] == -1 {
					owned.Add(p)
				}
			}

			if owned.Len() < minPixels {
				for p := range owned {
					labels[p.Y*width+p.X] = fragment
				}
				fragments++
				continue
			}

			idx := len(candidates)
			for p := range owned {
				labels[p.Y*width+p.X] = idx
			}
			seedColor, _ := buf.At(seed)
			candidates = append(candidates, Candidate{
				Index:      idx,
				Seed:       seed,
				Bounds:     owned.Bounds(),
				Centroid:   region.Centroid(owned),
				PixelCount: owned.Len(),
				FillColor:  seedColor.Hex(),
			})
		}
	}

	neighbors := findNeighbors(labels, width, height)
	slots, colors := greedyColoring(len(candidates), neighbors)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PixelCount > candidates[j].PixelCount
	})

	return &RegionsResult{
		Regions:      candidates,
		Count:        len(candidates),
		Fragments:    fragments,
		Neighbors:    neighbors,
		ColorsNeeded: colors,
		Suggested:    slots,
	}
}

// findNeighbors scans right and down neighbors of every labeled pixel and
// collects the distinct candidate pairs that meet.
func findNeighbors(labels []int, width, height int) [][2]int {
	seen := make(map[[2]int]bool)
	add := func(a, b int) {
		if a < 0 || b < 0 || a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		seen[[2]int{a, b}] = true
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l := labels[y*width+x]
			if x+1 < width {
				add(l, labels[y*width+x+1])
			}
			if y+1 < height {
				add(l, labels[(y+1)*width+x])
			}
		}
	}

	pairs := make([][2]int, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// greedyColoring colors n vertices largest-degree first, giving each the
// lowest slot unused by its colored neighbors. Returns the slot per vertex
// and the number of slots used.
func greedyColoring(n int, edges [][2]int) (map[int]int, int) {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(adj[order[i]]) > len(adj[order[j]])
	})

	slots := make(map[int]int, n)
	used := 0
	for _, v := range order {
		taken := make(map[int]bool, len(adj[v]))
		for _, u := range adj[v] {
			if s, ok := slots[u]; ok {
				taken[s] = true
			}
		}
		s := 0
		for taken[s] {
			s++
		}
		slots[v] = s
		if s+1 > used {
			used = s + 1
		}
	}
	return slots, used
}
