package tui

import (
	"fmt"
	"strings"

	"github.com/wcrum/krb-tui/internal/domain"
	"github.com/wcrum/krb-tui/internal/format"
)

const emptyItemsText = "No recycle items found."

func itemNamespace(it domain.RecycleItem) string {
	if it.ClusterScoped() {
		return "(cluster)"
	}
	return it.ObjectNamespace
}

func renderItemList(items []domain.RecycleItem, sortState SortState, s styles, cursor, width, maxVisible int) string {
	if len(items) == 0 {
		return "  " + emptyItemsText + "\n"
	}

	var b strings.Builder

	// Responsive columns
	wide := width >= 110
	if wide {
		header := fmt.Sprintf("  %-40s %-18s %-20s %-16s %s",
			SortIndicator("NAME", sortState), SortIndicator("KIND", sortState), "NAMESPACE", "API VERSION", SortIndicator("AGE", sortState))
		b.WriteString(s.header.Render(header))
	} else {
		header := fmt.Sprintf("  %-32s %-16s %-16s %s",
			SortIndicator("NAME", sortState), SortIndicator("KIND", sortState), "NAMESPACE", SortIndicator("AGE", sortState))
		b.WriteString(s.header.Render(header))
	}
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(items) && i < start+maxVisible; i++ {
		it := items[i]
		var line string
		if wide {
			line = fmt.Sprintf("  %-40s %-18s %-20s %-16s %s",
				truncate(sanitizeLine(it.Name), 39),
				truncate(sanitizeLine(it.ObjectKind), 17),
				truncate(sanitizeLine(itemNamespace(it)), 19),
				truncate(sanitizeLine(it.ObjectAPIVersion), 15),
				sanitizeLine(format.Age(it.Age)))
		} else {
			line = fmt.Sprintf("  %-32s %-16s %-16s %s",
				truncate(sanitizeLine(it.Name), 31),
				truncate(sanitizeLine(it.ObjectKind), 15),
				truncate(sanitizeLine(itemNamespace(it)), 15),
				sanitizeLine(format.Age(it.Age)))
		}

		if i == cursor {
			b.WriteString(s.selected.Width(width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func itemHelpKeys() string {
	return "j/k:nav  enter:yaml  u:restore  s:sort  /:filter  r:refresh  t:theme  tab:policies  q:quit"
}
