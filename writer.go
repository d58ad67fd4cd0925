package clusterx

import (
	"io"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/projectdiscovery/clusterx/cluster"
	"github.com/projectdiscovery/fasttemplate"
	"github.com/projectdiscovery/utils/errkit"
	mapsutil "github.com/projectdiscovery/utils/maps"
)

const (
	// ParenthesisOpen marker - begin of a placeholder
	ParenthesisOpen = "{{"
	// ParenthesisClose marker - end of a placeholder
	ParenthesisClose = "}}"

	// DefaultTemplate renders one member per line prefixed by its cluster id
	DefaultTemplate = "{{id}}\t{{value}}"
)

var ErrNilWriter = errkit.New("writer destination cannot be nil")

// ClusterOutput is the json representation of a cluster
type ClusterOutput struct {
	ID      int      `json:"id"`
	Size    int      `json:"size"`
	Members []string `json:"members"`
}

// Sorted returns clusters ordered by id
func Sorted(clusters cluster.Clusters) []ClusterOutput {
	ids := mapsutil.GetKeys(map[int][]string(clusters))
	sort.Ints(ids)
	out := make([]ClusterOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, ClusterOutput{ID: id, Size: len(clusters[id]), Members: clusters[id]})
	}
	return out
}

// Replace replaces placeholders in template with values on the fly.
func Replace(template string, values map[string]interface{}) string {
	return fasttemplate.ExecuteStringStd(template, ParenthesisOpen, ParenthesisClose, values)
}

// WriteText writes one line per cluster member rendered with template.
// available variables: {{id}}, {{value}}, {{size}}
func WriteText(w io.Writer, clusters cluster.Clusters, template string) error {
	if w == nil {
		return ErrNilWriter
	}
	if template == "" {
		template = DefaultTemplate
	}
	for _, c := range Sorted(clusters) {
		for _, member := range c.Members {
			line := Replace(template, map[string]interface{}{
				"id":    strconv.Itoa(c.ID),
				"value": member,
				"size":  strconv.Itoa(c.Size),
			})
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes clusters as a json array ordered by id
func WriteJSON(w io.Writer, clusters cluster.Clusters) error {
	if w == nil {
		return ErrNilWriter
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Sorted(clusters))
}
