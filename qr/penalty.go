package qr

// Penalty scores a symbol with the four mask evaluation rules of ISO/IEC
// 18004: runs of five or more same-colored modules, 2x2 same-colored blocks,
// finder-like 1:1:3:1:1 patterns next to four light modules, and deviation of
// the dark ratio from 50%. Lower is better.
func Penalty(g *Grid) int {
	size := g.Size()
	score := 0

	// N1 and N3, rows then columns.
	for i := 0; i < size; i++ {
		score += runPenalty(size, func(j int) bool { return g.Dark(j, i) })
		score += runPenalty(size, func(j int) bool { return g.Dark(i, j) })
		score += finderPenalty(size, func(j int) bool { return g.Dark(j, i) })
		score += finderPenalty(size, func(j int) bool { return g.Dark(i, j) })
	}

	// N2
	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			c := g.Dark(x, y)
			if c == g.Dark(x+1, y) && c == g.Dark(x, y+1) && c == g.Dark(x+1, y+1) {
				score += 3
			}
		}
	}

	// N4
	total := size * size
	if total > 0 {
		percent := g.DarkCount() * 100 / total
		deviation := percent - 50
		if deviation < 0 {
			deviation = -deviation
		}
		score += 10 * (deviation / 5)
	}

	return score
}

func runPenalty(size int, dark func(int) bool) int {
	score := 0
	run := 0
	for j := 0; j < size; j++ {
		if j > 0 && dark(j) == dark(j-1) {
			run++
			continue
		}
		if run >= 5 {
			score += 3 + run - 5
		}
		run = 1
	}
	if run >= 5 {
		score += 3 + run - 5
	}

	return score
}

var finderPattern = [7]bool{true, false, true, true, true, false, true}

// finderPenalty counts 1:1:3:1:1 patterns with four light modules on either
// side. Modules outside the line count as light.
func finderPenalty(size int, dark func(int) bool) int {
	at := func(j int) bool {
		if j < 0 || j >= size {
			return false
		}
		return dark(j)
	}

	score := 0
	for start := 0; start+7 <= size; start++ {
		matched := true
		for k, want := range finderPattern {
			if at(start+k) != want {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		lightBefore, lightAfter := true, true
		for k := 1; k <= 4; k++ {
			if at(start-k) {
				lightBefore = false
			}
			if at(start+6+k) {
				lightAfter = false
			}
		}
		if lightBefore {
			score += 40
		}
		if lightAfter {
			score += 40
		}
	}

	return score
}
