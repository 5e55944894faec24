package background

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// extensions lists the plate formats that can be decoded.
var extensions = map[string]bool{
	".tga":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Index is the sorted list of background plates found under a directory.
type Index struct {
	files []string
}

// BuildIndex walks dir and its subdirectories for plate images. An empty or
// missing dir yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if extensions[strings.ToLower(filepath.Ext(path))] {
			idx.files = append(idx.files, path)
		}
		return nil
	})

	sort.Strings(idx.files)
	return idx
}

// Pick returns the plate used for an iteration, or ("", false) when the
// index is empty.
func (idx *Index) Pick(iteration int) (string, bool) {
	n := len(idx.files)
	if n == 0 {
		return "", false
	}
	i := iteration % n
	if i < 0 {
		i += n
	}
	return idx.files[i], true
}

// Files returns the indexed paths in order.
func (idx *Index) Files() []string {
	return idx.files
}

// Len returns the number of indexed plates.
func (idx *Index) Len() int {
	return len(idx.files)
}
