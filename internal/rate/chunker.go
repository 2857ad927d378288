package rate

import "strings"

// DefaultSymbolsLimit bounds the comma-joined symbol list of one multi-symbol price query.
const DefaultSymbolsLimit = 300

// Chunk greedily packs codes into comma-joined groups (each code followed by
// a comma) so that no group is longer than maxLen. A code that alone exceeds
// maxLen still gets a group of its own; when it comes first, an empty group
// precedes it. The last group is always emitted, so an empty input yields a
// single empty group. Callers skip empty groups.
func Chunk(codes []string, maxLen int) []string {
	chunks := make([]string, 0, 1)
	var sb strings.Builder
	for _, code := range codes {
		// code length + 1 for the comma
		if sb.Len()+len(code)+1 > maxLen {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		sb.WriteString(code)
		sb.WriteByte(',')
	}
	return append(chunks, sb.String())
}
