// Package elves solves the day 6 puzzle: counting elves and shelves in text.
package elves

import (
	"fmt"
	"strings"

	"github.com/okian/codehunt/internal/domain/types"
)

// Patterns searched for in the text. Matching is case-sensitive.
const (
	ElfPattern         = "elf"
	ElfOnAShelfPattern = "elf on a shelf"
	ShelfPattern       = "shelf"
)

// shelfOffset is where the shelf sits inside "elf on a shelf".
var shelfOffset = strings.Index(ElfOnAShelfPattern, ShelfPattern)

// Count tallies elves, elves on shelves and empty shelves in text.
func Count(text string) types.TextCounts {
	counts, _ := count(text)
	return counts
}

// CountStrict is Count but reports an elf on a shelf whose shelf could not
// be paired with a shelf match.
func CountStrict(text string) (types.TextCounts, error) {
	return count(text)
}

func count(text string) (types.TextCounts, error) {
	elves := matchPositions(text, ElfPattern)
	onShelves := matchPositions(text, ElfOnAShelfPattern)
	shelves := matchPositions(text, ShelfPattern)

	empty, unpaired := pairShelves(shelves, onShelves)

	counts := types.TextCounts{
		Elf:                uint(len(elves)),
		ElfOnAShelf:        uint(len(onShelves)),
		ShelfWithNoElfOnIt: uint(empty),
	}
	if unpaired > 0 {
		return counts, fmt.Errorf("%w: %d elf on a shelf matches without a shelf", ErrInvariant, unpaired)
	}
	return counts, nil
}

// matchPositions returns the start of every non-overlapping occurrence of
// pattern, scanning left to right.
func matchPositions(text, pattern string) []int {
	var positions []int
	for offset := 0; ; {
		i := strings.Index(text[offset:], pattern)
		if i < 0 {
			return positions
		}
		positions = append(positions, offset+i)
		offset += i + len(pattern)
	}
}

// pairShelves walks both ascending position lists together. Every elf on a
// shelf consumes the shelf match embedded in it. It returns the shelves left
// over and the elf on a shelf matches that found no shelf.
func pairShelves(shelves, onShelves []int) (empty, unpaired int) {
	i := 0
	for _, start := range onShelves {
		want := start + shelfOffset
		for i < len(shelves) && shelves[i] < want {
			empty++
			i++
		}
		if i < len(shelves) && shelves[i] == want {
			i++
			continue
		}
		unpaired++
	}
	empty += len(shelves) - i
	return empty, unpaired
}
