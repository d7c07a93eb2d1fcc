// Package partition decides which of the two audio collections a record
// belongs to. The scheme is a fixed two-way split, not a general hash
// table: there is no resizing and no rebalancing, and records that map to
// the same value simply share a collection.
package partition

import (
	"strings"
	"unicode"
)

// Count is the number of partition collections.
const Count = 2

// tagPrefix is the collection name prefix shared by both partitions.
const tagPrefix = "audio_"

// Select maps an artist/track name pair to a partition index in [0, Count).
//
// For each name it takes the first alphabetic rune of the first word and of
// the last word, uppercases them, and sums their code points; a single-word
// name uses the same letter twice. The partition is the total sum modulo
// Count. Names containing no letters contribute nothing, so two letterless
// names fall through to partition 0 — callers are expected to reject such
// input before it gets here.
func Select(artistName, trackName string) int {
	sum := initialsSum(artistName) + initialsSum(trackName)
	return sum % Count
}

// Tag returns the partition collection name for the pair, e.g. "audio_1".
func Tag(artistName, trackName string) string {
	return TagFor(Select(artistName, trackName))
}

// TagFor returns the collection name for a partition index.
func TagFor(idx int) string {
	return tagPrefix + string(rune('0'+idx%Count))
}

// initialsSum extracts the two initials of a name and sums their code points.
func initialsSum(name string) int {
	words := strings.Fields(name)
	if len(words) == 0 {
		return 0
	}

	sum := 0
	if r, ok := firstLetter(words[0]); ok {
		sum += int(unicode.ToUpper(r))
	}
	if r, ok := firstLetter(words[len(words)-1]); ok {
		sum += int(unicode.ToUpper(r))
	}
	return sum
}

// firstLetter returns the first alphabetic rune of a word.
func firstLetter(word string) (rune, bool) {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return r, true
		}
	}
	return 0, false
}
