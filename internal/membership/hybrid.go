package membership

import (
	"strconv"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// HybridBackend stores the index in a disk backed hybrid map
type HybridBackend struct {
	storage *hybrid.HybridMap
	count   int
}

func NewHybridBackend() *HybridBackend {
	h := &HybridBackend{}
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		gologger.Fatal().Msgf("failed to create temp dir for clusterx membership index got: %v", err)
	}
	h.storage = db
	return h
}

func (h *HybridBackend) Set(value string, id int) {
	if _, ok := h.storage.Get(value); !ok {
		h.count++
	}
	if err := h.storage.Set(value, []byte(strconv.Itoa(id))); err != nil {
		gologger.Error().Msgf("membership: hybrid: got %v while writing %v", err, value)
	}
}

func (h *HybridBackend) Get(value string) (int, bool) {
	bin, ok := h.storage.Get(value)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(string(bin))
	if err != nil {
		gologger.Error().Msgf("membership: hybrid: corrupted cluster id %q for %v", bin, value)
		return 0, false
	}
	return id, true
}

func (h *HybridBackend) Len() int {
	return h.count
}

func (h *HybridBackend) Cleanup() {
	_ = h.storage.Close()
}
