package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/wcrum/krb-tui/internal/domain"
)

// SortColumn identifies a column for sorting.
type SortColumn int

const (
	SortNone SortColumn = iota
	// Items
	SortItemName
	SortItemKind
	SortItemAge
	// Policies
	SortPolicyName
	SortPolicyResource
	SortPolicyAge
)

// SortState holds the current sort configuration for a list.
type SortState struct {
	Column    SortColumn
	Ascending bool
}

// Label returns the header the sort applies to.
func (s SortState) Label() string {
	switch s.Column {
	case SortItemName, SortPolicyName:
		return "NAME"
	case SortItemKind:
		return "KIND"
	case SortPolicyResource:
		return "RESOURCE"
	case SortItemAge, SortPolicyAge:
		return "AGE"
	default:
		return ""
	}
}

// SortIndicator returns ▲ or ▼ for the active sort column header.
func SortIndicator(header string, state SortState) string {
	label := state.Label()
	if label == "" || !strings.EqualFold(header, label) {
		return header
	}
	if state.Ascending {
		return header + " ▲"
	}
	return header + " ▼"
}

// ageOf parses a raw age such as "1h5m3.2s". Unparseable ages sort as oldest.
func ageOf(raw string) time.Duration {
	d, err := time.ParseDuration(strings.ReplaceAll(raw, " ", ""))
	if err != nil {
		return time.Duration(1<<63 - 1)
	}
	return d
}

// --- Item sorting ---

func SortItems(items []domain.RecycleItem, state SortState) []domain.RecycleItem {
	if state.Column == SortNone || len(items) == 0 {
		return items
	}
	sorted := make([]domain.RecycleItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !state.Ascending {
			a, b = b, a
		}
		switch state.Column {
		case SortItemName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortItemKind:
			return strings.ToLower(a.ObjectKind) < strings.ToLower(b.ObjectKind)
		case SortItemAge:
			return ageOf(a.Age) < ageOf(b.Age) // newest first for ascending
		}
		return false
	})
	return sorted
}

func NextItemSort(current SortColumn) SortColumn {
	switch current {
	case SortNone:
		return SortItemName
	case SortItemName:
		return SortItemKind
	case SortItemKind:
		return SortItemAge
	default:
		return SortNone
	}
}

// --- Policy sorting ---

func SortPolicies(policies []domain.RecyclePolicy, state SortState) []domain.RecyclePolicy {
	if state.Column == SortNone || len(policies) == 0 {
		return policies
	}
	sorted := make([]domain.RecyclePolicy, len(policies))
	copy(sorted, policies)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !state.Ascending {
			a, b = b, a
		}
		switch state.Column {
		case SortPolicyName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortPolicyResource:
			return a.GroupResource().String() < b.GroupResource().String()
		case SortPolicyAge:
			return ageOf(a.Age) < ageOf(b.Age)
		}
		return false
	})
	return sorted
}

func NextPolicySort(current SortColumn) SortColumn {
	switch current {
	case SortNone:
		return SortPolicyName
	case SortPolicyName:
		return SortPolicyResource
	case SortPolicyResource:
		return SortPolicyAge
	default:
		return SortNone
	}
}

// nextSort advances column and direction the same way for every list:
// ascending, then descending, then the next column.
func nextSort(cur SortState, next func(SortColumn) SortColumn) SortState {
	if cur.Column != SortNone && cur.Ascending {
		return SortState{Column: cur.Column, Ascending: false}
	}
	col := next(cur.Column)
	return SortState{Column: col, Ascending: col != SortNone}
}
