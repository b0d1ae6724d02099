package pattern

// ExpandBraces expands the first top-level {a,b} group and recurses on the
// results, so "src/{a,b}/*.{go,md}" yields four patterns. Input without a
// balanced brace group is returned as-is in a single-element slice.
func ExpandBraces(pat string) []string {
	r := []rune(pat)
	open := -1
	for j := 0; j < len(r); j++ {
		switch r[j] {
		case '\\':
			j++
		case '[':
			if k := classEnd(r, j); k >= 0 {
				j = k
			}
		case '{':
			open = j
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return []string{pat}
	}
	end := matchingBrace(r, open)
	if end < 0 {
		return []string{pat}
	}

	prefix := string(r[:open])
	suffix := string(r[end+1:])
	var out []string
	for _, alt := range splitAlternation(r[open+1 : end]) {
		out = append(out, ExpandBraces(prefix+string(alt)+suffix)...)
	}
	return out
}
