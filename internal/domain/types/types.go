// Package types contains common types used across the application
package types

// ContestResult is the response shape for the reindeer contest.
type ContestResult struct {
	Fastest  string `json:"fastest"`
	Tallest  string `json:"tallest"`
	Magician string `json:"magician"`
	Consumer string `json:"consumer"`
}

// TextCounts is the response shape for the elf counter.
// Key names carry spaces on the wire.
type TextCounts struct {
	Elf                uint `json:"elf"`
	ElfOnAShelf        uint `json:"elf on a shelf"`
	ShelfWithNoElfOnIt uint `json:"shelf with no elf on it"`
}
