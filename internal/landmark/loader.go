package landmark

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultPath is the sentinel input path that selects Default().
const DefaultPath = "default"

// Load reads a sticker file with one "<alias> <x> <y> <z>" record per line.
//
// Aliases match case-insensitively; unknown lines are skipped and coordinates
// that are missing or do not parse read as 0. If any alias never appears the
// whole file is discarded in favour of Default(). Input is right-handed, so x
// is negated on a successful load.
func Load(path string, logger zerolog.Logger) (Set, error) {
	if path == DefaultPath {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("landmark: read %s: %w", path, err)
	}

	set, filled := Parse(string(raw))
	for i, ok := range filled {
		if !ok {
			logger.Warn().Str("alias", Names[i]).Str("path", path).
				Msg("Error finding sticker with alias. Falling back to default.")
			return Default(), nil
		}
	}

	for i := range set {
		set[i][0] = -set[i][0]
	}
	return set, nil
}

// Parse extracts sticker records from file contents. filled reports which
// aliases were seen; later records overwrite earlier ones.
func Parse(data string) (set Set, filled [Count]bool) {
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		idx, ok := IndexOf(fields[0])
		if !ok {
			continue
		}
		for k := 0; k < 3; k++ {
			set[idx][k] = parseCoord(fields, k+1)
		}
		filled[idx] = true
	}
	return set, filled
}

func parseCoord(fields []string, i int) float64 {
	if i >= len(fields) {
		return 0
	}
	v, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return 0
	}
	return v
}
