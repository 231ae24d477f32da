// Package omr analyses the projection of a music staff onto the x-axis to
// retrieve bar-line candidate peaks, brace peaks and precise staff start and
// stop abscissae.
//
// Processing is per staff and strictly phased: projection, staff-dependent
// thresholds, blank regions, peak detection, then end refinement. Each phase
// reads only state the prior phase wrote, so distinct staves can be analysed
// concurrently as long as the shared peak graph serialises vertex updates.
package omr
