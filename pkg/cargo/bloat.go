package cargo

import (
	"encoding/json"
	"fmt"
)

// bloatReport mirrors the JSON emitted by
// `cargo bloat -n0 --message-format=json --crates`.
type bloatReport struct {
	Crates []struct {
		Name string `json:"name"`
		Size uint64 `json:"size"`
	} `json:"crates"`
}

// ParseBloat parses the cargo bloat size report into a map from crate
// short name to compiled size in bytes. cargo bloat already aggregates per
// crate; if a name repeats anyway, the last entry wins.
func ParseBloat(text string) (map[string]uint64, error) {
	var report bloatReport
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return nil, fmt.Errorf("parse cargo bloat report: %w", err)
	}
	sizes := make(map[string]uint64, len(report.Crates))
	for _, c := range report.Crates {
		sizes[c.Name] = c.Size
	}
	return sizes, nil
}

// FoldBinSize credits the size recorded under the binary name to the root
// crate's short name. cargo bloat attributes the top-level code to the
// binary, which only matches the crate name when the two coincide.
func FoldBinSize(sizes map[string]uint64, bin, rootShort string) {
	if bin == "" || bin == rootShort {
		return
	}
	sizes[rootShort] += sizes[bin]
}
