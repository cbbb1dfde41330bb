package tui

import (
	"fmt"
	"strings"

	"github.com/wcrum/krb-tui/internal/domain"
	"github.com/wcrum/krb-tui/internal/format"
)

const emptyPoliciesText = "No recycle policies found. Create one to start recycling resources."

func policyGroup(p domain.RecyclePolicy) string {
	if p.Group == "" {
		return "(core)"
	}
	return p.Group
}

func policyNamespaces(p domain.RecyclePolicy) string {
	if p.AllNamespaces() {
		return "(all namespaces)"
	}
	return strings.Join(p.Namespaces, ", ")
}

func renderPolicyList(policies []domain.RecyclePolicy, sortState SortState, s styles, cursor, width, maxVisible int) string {
	if len(policies) == 0 {
		return "  " + emptyPoliciesText + "\n"
	}

	var b strings.Builder

	nsWidth := max(width-2-28-18-24-12, 16)
	header := fmt.Sprintf("  %-28s %-18s %-24s %-*s %s",
		SortIndicator("NAME", sortState), "GROUP", SortIndicator("RESOURCE", sortState),
		nsWidth, "NAMESPACES", SortIndicator("AGE", sortState))
	b.WriteString(s.header.Render(header))
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(policies) && i < start+maxVisible; i++ {
		p := policies[i]
		line := fmt.Sprintf("  %-28s %-18s %-24s %-*s %s",
			truncate(sanitizeLine(p.Name), 27),
			truncate(sanitizeLine(policyGroup(p)), 17),
			truncate(sanitizeLine(p.Resource), 23),
			nsWidth, truncate(sanitizeLine(policyNamespaces(p)), nsWidth-1),
			sanitizeLine(format.Age(p.Age)))

		if i == cursor {
			b.WriteString(s.selected.Width(width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func policyHelpKeys() string {
	return "j/k:nav  n:new  d:delete  s:sort  /:filter  r:refresh  t:theme  tab:items  q:quit"
}
