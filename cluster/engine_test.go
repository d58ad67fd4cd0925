package cluster

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// identityRecords annotates every value with itself as fingerprint
func identityRecords(values ...string) []Record {
	records := make([]Record, 0, len(values))
	for _, v := range values {
		records = append(records, Record{Value: v, Fingerprint: v, Count: 1})
	}
	return records
}

func runRecords(t *testing.T, records []Record, threshold int) (*Result, error) {
	t.Helper()
	return Run(context.Background(), records, Options{Threshold: threshold, Workers: 2})
}

func sortedClusters(c Clusters) [][]string {
	out := make([][]string, 0, len(c))
	for _, members := range c {
		m := append([]string{}, members...)
		sort.Strings(m)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func TestEngineColorFlavor(t *testing.T) {
	res, err := runRecords(t, identityRecords("color", "colour", "colr", "flavor", "flavour"), 2)
	require.Nil(t, err)
	require.Equal(t, [][]string{{"color", "colour", "colr"}, {"flavor", "flavour"}}, sortedClusters(res.Clusters))

	// dense ids
	require.Len(t, res.Clusters, 2)
	require.Contains(t, res.Clusters, 0)
	require.Contains(t, res.Clusters, 1)

	require.Len(t, res.Events, 3)
	require.Equal(t, MergeEvent{A: "color", B: "colour", Distance: 1, Dropped: "colour", ClusterID: 0, Created: true, EdgesRemoved: 4}, res.Events[0])
	require.Equal(t, "colr", res.Events[1].Dropped)
	require.False(t, res.Events[1].Created)
	require.Equal(t, "flavour", res.Events[2].Dropped)
}

func TestEngineSingleValue(t *testing.T) {
	res, err := runRecords(t, identityRecords("same", "same", "same", "same", "same"), 1)
	require.Nil(t, res)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, 1, insufficient.Fingerprints)
}

func TestEngineEmptyInput(t *testing.T) {
	_, err := runRecords(t, nil, 3)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, 0, insufficient.Fingerprints)
}

func TestEngineNoMerges(t *testing.T) {
	res, err := runRecords(t, identityRecords("apple", "zebra"), 1)
	require.Nil(t, err)
	require.Empty(t, res.Clusters)
	require.Empty(t, res.Events)
}

func TestEngineSeedClusters(t *testing.T) {
	records := []Record{
		{Value: "New York", Fingerprint: "new york"},
		{Value: "new york", Fingerprint: "new york"},
		{Value: "York, New", Fingerprint: "new york"},
		{Value: "New York", Fingerprint: "new york"},
		{Value: "Boston", Fingerprint: "boston"},
	}
	res, err := runRecords(t, records, 0)
	require.Nil(t, err)
	require.Len(t, res.Clusters, 1)
	// seed members are deduplicated
	require.Equal(t, []string{"New York", "new york", "York, New"}, res.Clusters[0])
	require.Empty(t, res.Events)
}

func TestEngineDropsLessFrequent(t *testing.T) {
	records := []Record{
		{Value: "aaa", Fingerprint: "aaa", Count: 10},
		{Value: "aab", Fingerprint: "aab", Count: 1},
		{Value: "abb", Fingerprint: "abb", Count: 5},
	}
	res, err := runRecords(t, records, 1)
	require.Nil(t, err)
	// aab is dropped after merging with aaa, abb is then 2 edits away from the survivor
	require.Equal(t, [][]string{{"aaa", "aab"}}, sortedClusters(res.Clusters))
	require.Len(t, res.Events, 1)
	require.Equal(t, "aab", res.Events[0].Dropped)

	res, err = runRecords(t, records, 2)
	require.Nil(t, err)
	require.Equal(t, [][]string{{"aaa", "aab", "abb"}}, sortedClusters(res.Clusters))
	require.Equal(t, "aab", res.Events[0].Dropped)
	require.Equal(t, "abb", res.Events[1].Dropped)

	// when the rare value survives, the chain continues through it
	records[0].Count = 1
	records[1].Count = 10
	res, err = runRecords(t, records, 1)
	require.Nil(t, err)
	require.Equal(t, [][]string{{"aaa", "aab", "abb"}}, sortedClusters(res.Clusters))
	require.Equal(t, "aaa", res.Events[0].Dropped)
}

func TestEngineMultipleMatchingClusters(t *testing.T) {
	records := []Record{
		{Value: "x1", Fingerprint: "ab"},
		{Value: "x2", Fingerprint: "ab"},
		{Value: "y1", Fingerprint: "ac"},
		{Value: "y2", Fingerprint: "ac"},
	}
	res, err := runRecords(t, records, 1)
	require.Nil(t, err)
	// first cluster wins and values owned by another cluster are not copied
	require.Equal(t, Clusters{0: {"x1", "x2"}, 1: {"y1", "y2"}}, res.Clusters)
	require.Len(t, res.Events, 1)
	require.Equal(t, 0, res.Events[0].ClusterID)
	require.Equal(t, "ac", res.Events[0].Dropped, "ties drop the second fingerprint")
}

func TestEngineRunOnce(t *testing.T) {
	idx := NewIndex(identityRecords("abc", "abd"))
	m, err := BuildMatrix(context.Background(), idx.Fingerprints(), MatrixOptions{})
	require.Nil(t, err)
	e := NewEngine(idx, m, 1)
	_, err = e.Run()
	require.Nil(t, err)
	_, err = e.Run()
	require.ErrorIs(t, err, ErrEngineConsumed)
}

func TestEngineIndexMismatch(t *testing.T) {
	idx := NewIndex(identityRecords("abc", "abd"))
	m, err := BuildMatrix(context.Background(), []string{"abc", "abd", "abe"}, MatrixOptions{})
	require.Nil(t, err)
	require.Equal(t, []string{"abc", "abd", "abe"}, m.Fingerprints())

	res, err := NewEngine(idx, m, 1).Run()
	require.ErrorIs(t, err, ErrIndexMismatch)
	require.Contains(t, err.Error(), `"abe"`)
	require.Nil(t, res)
}

func TestEngineProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	alphabet := []rune("abcd")
	for round := 0; round < 20; round++ {
		var records []Record
		for i := 0; i < 60; i++ {
			n := 2 + r.Intn(4)
			buf := make([]rune, n)
			for j := range buf {
				buf[j] = alphabet[r.Intn(len(alphabet))]
			}
			raw := fmt.Sprintf("%s#%d", string(buf), r.Intn(3))
			// fingerprint drops the suffix so that some groups have several members
			records = append(records, Record{Value: raw, Fingerprint: string(buf), Count: 1 + r.Intn(5)})
		}
		threshold := r.Intn(3)

		idx := NewIndex(records)
		m, err := BuildMatrix(context.Background(), idx.Fingerprints(), MatrixOptions{})
		require.Nil(t, err)
		res, err := NewEngine(idx, m, threshold).Run()
		require.Nil(t, err)

		// partition
		owner := map[string]int{}
		for id, members := range res.Clusters {
			for _, raw := range members {
				prev, ok := owner[raw]
				require.False(t, ok, "%v in clusters %d and %d", raw, prev, id)
				owner[raw] = id
			}
		}
		// threshold respected and dropped fingerprints never come back
		require.LessOrEqual(t, len(res.Events), idx.Len()-1)
		retired := map[string]struct{}{}
		for _, ev := range res.Events {
			require.LessOrEqual(t, ev.Distance, threshold)
			require.Equal(t, Levenshtein(ev.A, ev.B), ev.Distance)
			_, ok := retired[ev.A]
			require.False(t, ok, "retired fingerprint %v revisited", ev.A)
			_, ok = retired[ev.B]
			require.False(t, ok, "retired fingerprint %v revisited", ev.B)
			require.Contains(t, []string{ev.A, ev.B}, ev.Dropped)
			require.Greater(t, ev.EdgesRemoved, 0)
			retired[ev.Dropped] = struct{}{}
		}
		// seed groups are fully inside one cluster
		for _, g := range idx.Groups() {
			if len(g.Members) < 2 {
				continue
			}
			id := owner[g.Members[0]]
			for _, raw := range g.Members {
				got, ok := owner[raw]
				require.True(t, ok)
				require.Equal(t, id, got)
			}
		}
		// the loop stopped because nothing is left within threshold
		if top, ok := m.Min(); ok {
			require.Greater(t, top.Distance, threshold)
		}
	}
}
