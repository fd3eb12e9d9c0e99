package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ramanasai/moodpulse/internal/journal"
)

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total      int
	PerPage    int
	Current    int
	Offset     int
	TotalPages int
}

// NewPagination clamps current into [1, TotalPages].
func NewPagination(total, perPage, current int) *PaginationInfo {
	if perPage < 1 {
		perPage = 20
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	return &PaginationInfo{
		Total:      total,
		PerPage:    perPage,
		Current:    current,
		Offset:     (current - 1) * perPage,
		TotalPages: totalPages,
	}
}

// Apply narrows f to the current page.
func (p *PaginationInfo) Apply(f journal.Filter) journal.Filter {
	f.Limit = p.PerPage
	f.Offset = p.Offset
	return f
}

// GetRange returns the range of items on the current page (1-indexed)
func (p *PaginationInfo) GetRange() (start, end int) {
	start = p.Offset + 1
	end = p.Offset + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

func (p *PaginationInfo) HasNext() bool {
	return p.Current < p.TotalPages
}

func (p *PaginationInfo) HasPrev() bool {
	return p.Current > 1
}

// FormatSummary returns a human-readable summary
func (p *PaginationInfo) FormatSummary() string {
	if p.Total == 0 {
		return "No check-ins"
	}

	start, end := p.GetRange()
	if p.TotalPages == 1 {
		return fmt.Sprintf("Showing %d-%d of %d check-in%s", start, end, p.Total, plural(p.Total))
	}
	return fmt.Sprintf("Showing %d-%d of %d check-in%s (page %d of %d)",
		start, end, p.Total, plural(p.Total), p.Current, p.TotalPages)
}

// FormatNavigation returns navigation hints for CLI
func (p *PaginationInfo) FormatNavigation() string {
	if p.TotalPages <= 1 {
		return ""
	}

	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("use --page %d for previous", p.Current-1))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("use --page %d for next", p.Current+1))
	}
	return strings.Join(hints, ", ")
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// ParsePage accepts a page number or "first"/"last". "last" resolves to
// totalPages.
func ParsePage(pageStr string, totalPages int) (int, error) {
	pageStr = strings.TrimSpace(strings.ToLower(pageStr))
	switch pageStr {
	case "", "first":
		return 1, nil
	case "last":
		if totalPages < 1 {
			return 1, nil
		}
		return totalPages, nil
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 1, fmt.Errorf("invalid page number: %s", pageStr)
	}
	if page < 1 {
		return 1, fmt.Errorf("page number must be positive")
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return page, nil
}
