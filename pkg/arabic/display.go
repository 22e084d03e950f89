package arabic

import (
	"golang.org/x/text/unicode/bidi"
)

// Display returns one line of text in visual (left to right) order.
//
// It implements the implicit part of the Unicode bidirectional algorithm:
// weak and neutral type resolution, implicit levels, reordering and mirroring
// of paired brackets inside right-to-left runs. Explicit embedding controls
// are treated as neutrals. The paragraph direction is taken from the first
// strong character and defaults to left to right.
//
// Display must be applied to a single line; wrapping has to happen before.
func Display(line string) string {
	return display(line, -1)
}

// DisplayDirection is Display with the paragraph direction given by the
// caller. Use it for lines wrapped out of a longer paragraph, whose own first
// strong character may not match the paragraph direction.
func DisplayDirection(line string, rtl bool) string {
	if rtl {
		return display(line, 1)
	}
	return display(line, 0)
}

// display reorders line at paragraph level base, or at the level of its first
// strong character when base is negative.
func display(line string, base int) string {
	runes := []rune(line)
	if len(runes) == 0 {
		return line
	}

	classes := make([]bidi.Class, len(runes))
	for i, r := range runes {
		p, _ := bidi.LookupRune(r)
		classes[i] = p.Class()
	}

	if base < 0 {
		base = paragraphLevel(classes)
	}
	resolveWeak(classes, base)
	resolveNeutral(classes, base)
	levels := implicitLevels(classes, base)
	resetTrailing(runes, levels, base)

	reorder(runes, levels)
	return string(runes)
}

// IsRTL reports whether the paragraph direction of s is right to left.
func IsRTL(s string) bool {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return true
		case bidi.L:
			return false
		}
	}
	return false
}

func paragraphLevel(classes []bidi.Class) int {
	for _, c := range classes {
		switch c {
		case bidi.R, bidi.AL:
			return 1
		case bidi.L:
			return 0
		}
	}
	return 0
}

func embeddingClass(level int) bidi.Class {
	if level%2 == 1 {
		return bidi.R
	}
	return bidi.L
}

func isNeutral(c bidi.Class) bool {
	switch c {
	case bidi.B, bidi.S, bidi.WS, bidi.ON, bidi.BN,
		bidi.LRE, bidi.RLE, bidi.LRO, bidi.RLO, bidi.PDF,
		bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI, bidi.Control:
		return true
	}
	return false
}

// resolveWeak applies rules W1 to W7 over the whole line, which forms a
// single isolating run sequence.
func resolveWeak(c []bidi.Class, base int) {
	sos := embeddingClass(base)

	// W1: non-spacing marks take the type of the previous character.
	for i := range c {
		if c[i] == bidi.NSM {
			if i == 0 {
				c[i] = sos
			} else {
				c[i] = c[i-1]
			}
		}
	}

	// W2: European numbers after Arabic letters become Arabic numbers.
	// W3: Arabic letters become R.
	last := sos
	for i := range c {
		switch c[i] {
		case bidi.L, bidi.R:
			last = c[i]
		case bidi.AL:
			last = bidi.AL
			c[i] = bidi.R
		case bidi.EN:
			if last == bidi.AL {
				c[i] = bidi.AN
			}
		}
	}

	// W4: a single separator between two numbers of the same type joins them.
	for i := 1; i+1 < len(c); i++ {
		prev, next := c[i-1], c[i+1]
		switch {
		case c[i] == bidi.ES && prev == bidi.EN && next == bidi.EN:
			c[i] = bidi.EN
		case c[i] == bidi.CS && prev == next && (prev == bidi.EN || prev == bidi.AN):
			c[i] = prev
		}
	}

	// W5: terminators adjacent to European numbers become European numbers.
	for i := 0; i < len(c); i++ {
		if c[i] != bidi.ET {
			continue
		}
		j := i
		for j < len(c) && c[j] == bidi.ET {
			j++
		}
		if (i > 0 && c[i-1] == bidi.EN) || (j < len(c) && c[j] == bidi.EN) {
			for k := i; k < j; k++ {
				c[k] = bidi.EN
			}
		}
		i = j - 1
	}

	// W6: remaining separators and terminators become neutral.
	for i := range c {
		switch c[i] {
		case bidi.ES, bidi.ET, bidi.CS:
			c[i] = bidi.ON
		}
	}

	// W7: European numbers preceded by L (or an L start) become L.
	last = sos
	for i := range c {
		switch c[i] {
		case bidi.L, bidi.R:
			last = c[i]
		case bidi.EN:
			if last == bidi.L {
				c[i] = bidi.L
			}
		}
	}
}

// strongDirection maps resolved classes to the direction used by the
// neutral rules: numbers count as R.
func strongDirection(c bidi.Class) (bidi.Class, bool) {
	switch c {
	case bidi.L:
		return bidi.L, true
	case bidi.R, bidi.AN, bidi.EN:
		return bidi.R, true
	}
	return 0, false
}

// resolveNeutral applies rules N1 and N2.
func resolveNeutral(c []bidi.Class, base int) {
	sos := embeddingClass(base)
	for i := 0; i < len(c); i++ {
		if !isNeutral(c[i]) {
			continue
		}
		j := i
		for j < len(c) && isNeutral(c[j]) {
			j++
		}

		before := sos
		if i > 0 {
			if d, ok := strongDirection(c[i-1]); ok {
				before = d
			}
		}
		after := sos
		if j < len(c) {
			if d, ok := strongDirection(c[j]); ok {
				after = d
			}
		}

		resolved := embeddingClass(base)
		if before == after {
			resolved = before
		}
		for k := i; k < j; k++ {
			c[k] = resolved
		}
		i = j - 1
	}
}

// implicitLevels applies rules I1 and I2.
func implicitLevels(c []bidi.Class, base int) []int {
	levels := make([]int, len(c))
	for i, cls := range c {
		level := base
		if base%2 == 0 {
			switch cls {
			case bidi.R:
				level++
			case bidi.AN, bidi.EN:
				level += 2
			}
		} else {
			switch cls {
			case bidi.L, bidi.AN, bidi.EN:
				level++
			}
		}
		levels[i] = level
	}
	return levels
}

// resetTrailing applies rule L1 to whitespace at the end of the line.
func resetTrailing(runes []rune, levels []int, base int) {
	for i := len(runes) - 1; i >= 0; i-- {
		p, _ := bidi.LookupRune(runes[i])
		switch p.Class() {
		case bidi.WS, bidi.S, bidi.B, bidi.BN:
			levels[i] = base
			continue
		}
		break
	}
}

// reorder applies rules L2 and L4 in place.
func reorder(runes []rune, levels []int) {
	highest, lowestOdd := 0, -1
	for _, l := range levels {
		if l > highest {
			highest = l
		}
		if l%2 == 1 && (lowestOdd == -1 || l < lowestOdd) {
			lowestOdd = l
		}
	}

	for i, l := range levels {
		if l%2 == 1 {
			runes[i] = mirror(runes[i])
		}
	}

	if lowestOdd == -1 {
		return
	}
	for level := highest; level >= lowestOdd; level-- {
		for i := 0; i < len(levels); i++ {
			if levels[i] < level {
				continue
			}
			j := i
			for j < len(levels) && levels[j] >= level {
				j++
			}
			reverse(runes[i:j])
			reverseInts(levels[i:j])
			i = j
		}
	}
}

var mirrors = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'«': '»', '»': '«',
	'‹': '›', '›': '‹',
}

func mirror(r rune) rune {
	if m, ok := mirrors[r]; ok {
		return m
	}
	return r
}

func reverse(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

func reverseInts(v []int) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
