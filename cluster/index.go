package cluster

import (
	"github.com/armon/go-radix"
)

// Record is a raw value annotated with its fingerprint and the number of
// times it occurs in the source (pre-aggregated sources carry counts > 1)
type Record struct {
	Value       string
	Fingerprint string
	Count       int
}

// Group holds all raw values sharing one fingerprint
type Group struct {
	Fingerprint string
	// Members in order of appearance, duplicates included
	Members []string
	// Count is the sum of record counts, not len(Members)
	Count int
}

// Index groups raw values by fingerprint.
// Groups are stored in a radix tree so that walking it yields
// fingerprints in lexicographic order.
type Index struct {
	tree     *radix.Tree
	byteSize int
}

// NewIndex builds the fingerprint index from records.
// Records with a non positive count contribute a single occurrence.
func NewIndex(records []Record) *Index {
	idx := &Index{tree: radix.New()}
	for _, r := range records {
		count := r.Count
		if count < 1 {
			count = 1
		}
		idx.byteSize += len(r.Value)
		if v, ok := idx.tree.Get(r.Fingerprint); ok {
			g := v.(*Group)
			g.Members = append(g.Members, r.Value)
			g.Count += count
			continue
		}
		idx.tree.Insert(r.Fingerprint, &Group{
			Fingerprint: r.Fingerprint,
			Members:     []string{r.Value},
			Count:       count,
		})
	}
	return idx
}

// Len returns number of distinct fingerprints
func (i *Index) Len() int {
	return i.tree.Len()
}

// ByteSize returns total size of all raw values in bytes
func (i *Index) ByteSize() int {
	return i.byteSize
}

// Group returns group of given fingerprint
func (i *Index) Group(fingerprint string) (*Group, bool) {
	v, ok := i.tree.Get(fingerprint)
	if !ok {
		return nil, false
	}
	return v.(*Group), true
}

// Fingerprints returns all distinct fingerprints in lexicographic order
func (i *Index) Fingerprints() []string {
	fps := make([]string, 0, i.tree.Len())
	i.tree.Walk(func(key string, _ interface{}) bool {
		fps = append(fps, key)
		return false
	})
	return fps
}

// Groups returns all groups ordered by fingerprint
func (i *Index) Groups() []*Group {
	groups := make([]*Group, 0, i.tree.Len())
	i.tree.Walk(func(_ string, v interface{}) bool {
		groups = append(groups, v.(*Group))
		return false
	})
	return groups
}
