package invoice

// LineItems returns the lines that look like purchased items: some run of
// capital letters and none of the known labels. It is a best-effort filter
// and lets plenty of noise through.
func LineItems(doc Document) []string {
	items := make([]string, 0)
	for _, line := range doc.Lines {
		if itemPattern.MatchString(line) && !itemExclusions.MatchString(line) {
			items = append(items, line)
		}
	}
	return items
}
