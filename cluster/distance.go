package cluster

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	fastlevenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/projectdiscovery/utils/errkit"
)

const (
	// DistanceLevenshtein uses agnivade/levenshtein (default)
	DistanceLevenshtein = "levenshtein"
	// DistanceFast uses ka-weihe/fast-levenshtein
	DistanceFast = "fast"
)

var ErrUnknownDistance = errkit.New("unknown distance function")

// DistanceFunc returns the edit distance between two strings
type DistanceFunc func(a, b string) int

// Levenshtein is the character level levenshtein distance
func Levenshtein(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// fast-levenshtein keeps a package level lookup table,
// calls must not overlap
var fastMu sync.Mutex

// FastLevenshtein is an alternative levenshtein implementation
// which is faster on short ascii strings.
// Empty operands and runes outside the basic multilingual plane are not
// supported by the fast path and use Levenshtein instead.
func FastLevenshtein(a, b string) int {
	if a == "" || b == "" || !basicPlane(a) || !basicPlane(b) {
		return Levenshtein(a, b)
	}
	fastMu.Lock()
	defer fastMu.Unlock()
	return fastlevenshtein.Distance(a, b)
}

// basicPlane returns true if every rune of s is below U+10000
func basicPlane(s string) bool {
	for _, r := range s {
		if r > 0xFFFF || r == utf8.RuneError {
			return false
		}
	}
	return true
}

// DistanceByName returns distance function registered under name
func DistanceByName(name string) (DistanceFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DistanceLevenshtein:
		return Levenshtein, nil
	case DistanceFast:
		return FastLevenshtein, nil
	default:
		return nil, errkit.Wrap(ErrUnknownDistance, name)
	}
}
