package omr

import "sync"

// PeakGraph is the capability this package requires from the sheet-wide peak
// graph. Only vertex membership is managed here; alignment and connection
// edges across staves are owned by the caller.
type PeakGraph interface {
	AddVertex(peak *StaffPeak)
	RemoveVertex(peak *StaffPeak)
}

// MemoryPeakGraph is a mutex-guarded in-memory vertex set, safe for staves
// processed concurrently.
type MemoryPeakGraph struct {
	mu       sync.Mutex
	vertices map[*StaffPeak]struct{}
}

// NewMemoryPeakGraph creates an empty peak graph.
func NewMemoryPeakGraph() *MemoryPeakGraph {
	return &MemoryPeakGraph{vertices: make(map[*StaffPeak]struct{})}
}

// AddVertex registers a peak with the graph.
func (g *MemoryPeakGraph) AddVertex(peak *StaffPeak) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vertices[peak] = struct{}{}
}

// RemoveVertex removes a peak from the graph.
func (g *MemoryPeakGraph) RemoveVertex(peak *StaffPeak) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.vertices, peak)
}

// Contains reports whether a peak is registered.
func (g *MemoryPeakGraph) Contains(peak *StaffPeak) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.vertices[peak]
	return ok
}

// Len reports the number of registered peaks.
func (g *MemoryPeakGraph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.vertices)
}
