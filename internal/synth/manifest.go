package synth

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one captured frame in the output manifest.
type ManifestEntry struct {
	Iteration int    `json:"iteration"`
	Frame     int    `json:"frame"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Data      string `json:"data,omitempty"`
}

// WriteManifest writes the entries as indented JSON to path.
func WriteManifest(path string, entries []ManifestEntry) error {
	if entries == nil {
		entries = []ManifestEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
