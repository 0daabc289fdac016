package delimited

import "github.com/kosarica/supplier-import/internal/parsers/lines"

// Candidates are the delimiters DetectDelimiter considers
var Candidates = []rune{',', ';', '\t', '|'}

// DetectDelimiter picks the candidate that occurs most consistently across
// the first few non-blank lines. Comma wins when nothing is found.
func DetectDelimiter(content string, sampleSize int) rune {
	if sampleSize <= 0 {
		sampleSize = 5
	}
	sample := lines.Sample(content, sampleSize)
	if len(sample) == 0 {
		return ','
	}

	best := ','
	bestScore := 0.0

	for _, delim := range Candidates {
		counts := make([]int, len(sample))
		sum := 0
		for i, line := range sample {
			counts[i] = len(SplitLine(line, delim, '"')) - 1
			sum += counts[i]
		}

		avg := float64(sum) / float64(len(counts))
		if avg == 0 {
			continue
		}

		variance := 0.0
		for _, c := range counts {
			diff := float64(c) - avg
			variance += diff * diff
		}
		variance /= float64(len(counts))

		// consistent counts beat high but erratic counts
		score := avg / (1.0 + variance)
		if score > bestScore {
			bestScore = score
			best = delim
		}
	}

	return best
}
