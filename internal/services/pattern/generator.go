package pattern

// Prefix pools per pattern length. Every entry starts at least one
// reasonably common English word, so a legal answer always exists.
var (
	singlePrefixes = []string{
		"a", "b", "c", "d", "e", "f", "g", "h", "l", "m",
		"p", "r", "s", "t", "w",
	}
	doublePrefixes = []string{
		"st", "ch", "pr", "br", "tr", "sh", "th", "wh", "sp", "pl",
		"cl", "gr", "fl", "sl", "cr", "dr", "qu", "sw", "bl", "fr",
		"ca", "ma", "re", "co", "ba",
	}
	triplePrefixes = []string{
		"str", "pre", "pro", "con", "com", "int", "imp", "exp", "tra",
		"gra", "pla", "spr", "thr", "sta", "sto", "per", "par", "car",
		"man", "for",
	}
)

// Score thresholds at which patterns get longer
const (
	doubleThreshold = 50
	tripleThreshold = 150
)

// Generator produces the required word prefix for the next turn.
// The output is a pure function of the generator's seed and the score,
// so every participant computing the next pattern from the same
// snapshot arrives at the same answer.
type Generator struct {
	seed int64
}

// New creates a generator with the given seed
func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

// Next returns the pattern that follows the given cumulative score.
// Patterns grow from one to three letters as the score climbs.
func (g *Generator) Next(score int) string {
	pool := poolFor(score)
	idx := mix(g.seed, int64(score)) % uint64(len(pool))
	return pool[idx]
}

func poolFor(score int) []string {
	switch {
	case score < doubleThreshold:
		return singlePrefixes
	case score < tripleThreshold:
		return doublePrefixes
	default:
		return triplePrefixes
	}
}

// mix is a splitmix64-style avalanche over seed and score
func mix(seed, score int64) uint64 {
	z := uint64(seed) ^ (uint64(score) * 0x9e3779b97f4a7c15)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
