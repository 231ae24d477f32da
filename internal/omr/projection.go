package omr

// Projection holds, for each abscissa of the sheet, the count of foreground
// pixels cumulated between the staff's first and last lines. It is immutable
// once built.
type Projection struct {
	values []int
}

// NewProjection wraps a computed series of per-column counts. The slice is
// owned by the projection afterwards.
func NewProjection(values []int) *Projection {
	return &Projection{values: values}
}

// Width reports the projection domain size.
func (p *Projection) Width() int {
	return len(p.values)
}

// Value reports the cumulated foreground count at abscissa x.
func (p *Projection) Value(x int) int {
	return p.values[x]
}

// Derivative reports the first difference Value(x) - Value(x-1).
// At the domain start it reports 0 since there is no predecessor.
func (p *Projection) Derivative(x int) int {
	if x <= 0 {
		return 0
	}
	return p.values[x] - p.values[x-1]
}

// Values reports a copy of the whole series, for diagnostic consumers.
func (p *Projection) Values() []int {
	out := make([]int, len(p.values))
	copy(out, p.values)
	return out
}

// Derivatives reports a copy of the whole first-difference series.
func (p *Projection) Derivatives() []int {
	out := make([]int, len(p.values))
	for x := 1; x < len(p.values); x++ {
		out[x] = p.values[x] - p.values[x-1]
	}
	return out
}
