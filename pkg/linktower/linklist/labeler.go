package linklist

import (
	"sort"
	"strings"
)

// LabelGroup pairs a label heading with the links that appeared under
// it, in arrival order.
type LabelGroup struct {
	Label string
	Links []Link
}

// GroupByLabel groups links by their label. Links keep their arrival
// order within each group; groups are emitted sorted by label, so the
// unlabeled ("") group always comes first.
func GroupByLabel(links []Link) []LabelGroup {
	byLabel := make(map[string][]Link)
	for _, link := range links {
		byLabel[link.Label] = append(byLabel[link.Label], link)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	groups := make([]LabelGroup, len(labels))
	for i, label := range labels {
		groups[i] = LabelGroup{Label: label, Links: byLabel[label]}
	}
	return groups
}

// RenderText serializes grouped links back into the editable text
// form: the label line verbatim, one "[description](url)" line per
// link, then a blank separator line. Re-parsing the result yields the
// same set of links.
func RenderText(groups []LabelGroup) string {
	var b strings.Builder
	for _, group := range groups {
		b.WriteString(group.Label)
		b.WriteString("\n")
		for _, link := range group.Links {
			b.WriteString("[")
			b.WriteString(link.Description)
			b.WriteString("](")
			b.WriteString(link.URL)
			b.WriteString(")\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
