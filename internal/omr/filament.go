package omr

import (
	"image"

	"github.com/omrkit/staffscan/internal/monitoring"
)

// Section is a maximal run-length pixel group, the raw unit merged into
// filaments. Sections are owned and indexed outside this package.
type Section interface {
	// Bounds reports the section bounding box.
	Bounds() image.Rectangle
	// HorizontalLength reports the section run length along the x axis.
	HorizontalLength() int
}

// Shape is a connected glyph produced by merging sections.
type Shape interface {
	Bounds() image.Rectangle
}

// FilamentFactory merges a set of sections into one connected shape anchored
// on the given core bounds. It reports nil when no coherent shape can be
// built; that outcome is not an error.
type FilamentFactory interface {
	BuildShape(sections []Section, coreBounds image.Rectangle) Shape
}

// FilamentIndex registers built shapes. Registration of a single filament
// happens at most once.
type FilamentIndex interface {
	Register(shape Shape)
}

// FilamentBuilder builds a bar/bracket/brace filament out of the pixel
// sections lying under a peak.
type FilamentBuilder struct {
	factory FilamentFactory
	index   FilamentIndex
}

// NewFilamentBuilder creates a builder around the external merge factory and
// shape index.
func NewFilamentBuilder(factory FilamentFactory, index FilamentIndex) *FilamentBuilder {
	return &FilamentBuilder{factory: factory, index: index}
}

// BuildFilament selects the candidate sections under the peak and delegates
// their merge to the factory.
//
// verticalExtension grows the peak box beyond the staff to catch bracket and
// brace ends. allSections must be sorted by abscissa: the scan stops as soon
// as a section starts beyond the grown box right edge. A section qualifies
// when its box intersects the grown peak box and its own horizontal run does
// not exceed the width of this particular peak.
func (fb *FilamentBuilder) BuildFilament(peak *StaffPeak, verticalExtension int, allSections []Section) Shape {
	peakBox := peak.Bounds()

	// Increase height slightly beyond staff
	peakBox.Min.Y -= verticalExtension
	peakBox.Max.Y += verticalExtension

	xBreak := peakBox.Max.X
	maxSectionWidth := peak.Width() // Width of this particular peak
	var sections []Section

	for _, section := range allSections {
		sectionBox := section.Bounds()

		if sectionBox.Overlaps(peakBox) {
			if section.HorizontalLength() <= maxSectionWidth {
				sections = append(sections, section)
			}
		} else if sectionBox.Min.X >= xBreak {
			break // Since allSections are sorted by abscissa
		}
	}

	shape := fb.factory.BuildShape(sections, peak.Bounds())
	if shape == nil {
		monitoring.Debugf("no filament built for %s", peak)
		return nil
	}

	fb.index.Register(shape)
	return shape
}
