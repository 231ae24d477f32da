package omr

// verticalCoreGap measures the largest vertical run of background rows in
// the area bounded by two vertical probe lines at abscissae x1 and x2
// (inclusive), between ordinates yTop and yBottom. A row counts as
// background when no foreground pixel lies between the probes at that
// ordinate.
func verticalCoreGap(src PixelSource, x1, x2, yTop, yBottom int) int {
	if x2 < x1 {
		x1, x2 = x2, x1
	}

	largest := 0
	run := 0

	for y := yTop; y <= yBottom; y++ {
		inked := false
		for x := x1; x <= x2; x++ {
			if src.Foreground(x, y) {
				inked = true
				break
			}
		}

		if inked {
			run = 0
			continue
		}
		run++
		if run > largest {
			largest = run
		}
	}

	return largest
}
