package csv

// sniffDelimiters are the candidates DetectDelimiter considers, in order of
// preference on a tie.
var sniffDelimiters = []rune{',', '\t', ';', '|'}

// sniffLines caps the number of records DetectDelimiter looks at.
const sniffLines = 10

// DetectDelimiter guesses the field delimiter of a CSV sample.
//
// Each candidate (comma, tab, semicolon, pipe) is used to scan the sample;
// a candidate that splits every complete record into the same number of
// fields scores ten times that width, otherwise it scores the width of the
// first record. Quoted fields are honored, so delimiters inside quotes do
// not count. The last record is ignored when the sample has more than one,
// since a truncated sample usually cuts it short. Returns ',' when nothing
// scores.
func DetectDelimiter(sample string) rune {
	best, bestScore := ',', 0
	for _, delim := range sniffDelimiters {
		if score := sniffScore(sample, delim); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func sniffScore(sample string, delim rune) int {
	s := NewScannerFromString(sample, WithComma(delim))
	var widths []int
	var row Row
	for len(widths) <= sniffLines {
		if err := row.Read(s); err != nil {
			// EOF or a quote cut off by the sample boundary.
			break
		}
		if isBlankRow(row) {
			continue
		}
		widths = append(widths, row.Len())
	}
	if len(widths) > 1 {
		widths = widths[:len(widths)-1]
	}
	if len(widths) == 0 || widths[0] < 2 {
		return 0
	}

	for _, w := range widths[1:] {
		if w != widths[0] {
			return widths[0] - 1
		}
	}
	return (widths[0] - 1) * 10
}
