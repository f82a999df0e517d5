package linklist

// Diff compares a room's stored links against a freshly parsed
// submission and reports what to insert and what to delete. Two links
// are the same link only when url, label and description all match;
// a link whose label or description changed therefore shows up as one
// removal plus one addition. Order changes alone produce no diff.
func Diff(stored, parsed []Link) (added, removed []Link) {
	storedSet := make(map[Link]bool, len(stored))
	for _, link := range stored {
		storedSet[link] = true
	}
	parsedSet := make(map[Link]bool, len(parsed))
	for _, link := range parsed {
		parsedSet[link] = true
	}

	for _, link := range parsed {
		if !storedSet[link] {
			added = append(added, link)
		}
	}
	for _, link := range stored {
		if !parsedSet[link] {
			removed = append(removed, link)
		}
	}
	return added, removed
}
