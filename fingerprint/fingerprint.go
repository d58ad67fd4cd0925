// Package fingerprint provides key collision keyers.
// A keyer maps a raw value to a canonical key so that values differing only
// trivially (case, punctuation, token order, accents) collapse to one key.
package fingerprint

import (
	"sort"
	"strings"
	"unicode"

	"github.com/projectdiscovery/utils/errkit"
	sliceutil "github.com/projectdiscovery/utils/slice"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// KeyerIdentity keeps the raw value as is
	KeyerIdentity = "identity"
	// KeyerFingerprint is the token based keyer (default)
	KeyerFingerprint = "fingerprint"
	// KeyerNGram is the character n-gram keyer
	KeyerNGram = "ngram"

	// DefaultNGramSize is used when ngram size is not specified
	DefaultNGramSize = 2
)

var ErrUnknownKeyer = errkit.New("unknown keyer")

// Keyer computes the fingerprint of a raw value.
// Implementations must be deterministic: the same input always yields the same key.
type Keyer interface {
	Key(value string) string
}

// KeyerFunc adapts a plain function to the Keyer interface
type KeyerFunc func(value string) string

// Key calls f(value)
func (f KeyerFunc) Key(value string) string {
	return f(value)
}

// Identity returns the value unchanged
type Identity struct{}

func (Identity) Key(value string) string {
	return value
}

// Fingerprint is the token keyer:
// trim, lowercase, fold diacritics, strip punctuation and control chars,
// split on whitespace, sort and dedupe tokens and join them with a single space.
//
// ex: "Tom  Cruise", "cruise, tom" and "TOM CRUISE." all map to "cruise tom"
type Fingerprint struct{}

func (Fingerprint) Key(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = fold(value)
	value = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	tokens := sliceutil.Dedupe(strings.Fields(value))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// NGram is the character n-gram keyer:
// lowercase, fold diacritics, drop punctuation, control chars and whitespace,
// then join the sorted set of unique n-grams of size Size.
// Values shorter than Size are used as their only gram.
type NGram struct {
	Size int
}

func (n NGram) Key(value string) string {
	size := n.Size
	if size <= 0 {
		size = DefaultNGramSize
	}
	value = fold(strings.ToLower(value))
	cleaned := []rune(strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsControl(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value))
	if len(cleaned) <= size {
		return string(cleaned)
	}
	grams := make([]string, 0, len(cleaned)-size+1)
	for i := 0; i+size <= len(cleaned); i++ {
		grams = append(grams, string(cleaned[i:i+size]))
	}
	grams = sliceutil.Dedupe(grams)
	sort.Strings(grams)
	return strings.Join(grams, "")
}

// ByName returns keyer registered under name
// ngramSize is only used by the ngram keyer
func ByName(name string, ngramSize int) (Keyer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", KeyerFingerprint:
		return Fingerprint{}, nil
	case KeyerIdentity:
		return Identity{}, nil
	case KeyerNGram:
		return NGram{Size: ngramSize}, nil
	default:
		return nil, errkit.Wrap(ErrUnknownKeyer, name)
	}
}

// fold strips combining marks after canonical decomposition (é -> e).
// transformers are stateful so a new chain is built on every call
func fold(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return folded
}
