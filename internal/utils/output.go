package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramanasai/moodpulse/internal/affect"
	"github.com/ramanasai/moodpulse/internal/analytics"
	"github.com/ramanasai/moodpulse/internal/encryption"
	"github.com/ramanasai/moodpulse/internal/journal"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// ParseFormat validates a --format value. Empty means FormatDefault.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatCompact, FormatQuiet:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// ThemeMono disables colored output.
const ThemeMono = "mono"

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format      OutputFormat
	Width       int
	ShowID      bool
	ShowContext bool
	Color       bool
	Location    *time.Location
	Space       *affect.Space
}

// DefaultRenderConfig returns a default render configuration for theme.
func DefaultRenderConfig(theme string) *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	_, noColor := os.LookupEnv("NO_COLOR")

	return &RenderConfig{
		Format:      FormatDefault,
		Width:       width,
		ShowID:      true,
		ShowContext: true,
		Color:       theme != ThemeMono && !noColor,
		Location:    time.Local,
		Space:       affect.Default(),
	}
}

// EntryList is a page of entries plus the pagination it came from.
type EntryList struct {
	Entries    []journal.Entry   `json:"entries"`
	Total      int               `json:"total"`
	Page       int               `json:"page,omitempty"`
	PerPage    int               `json:"per_page,omitempty"`
	TotalPages int               `json:"total_pages,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	ID        lipgloss.Style
	Emotion   lipgloss.Style
	Context   lipgloss.Style
	Text      lipgloss.Style
	Highlight lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig("")
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Space == nil {
		config.Space = affect.Default()
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:     plain.Bold(true),
			Separator: plain,
			Meta:      plain,
			ID:        plain,
			Emotion:   plain.Bold(true),
			Context:   plain,
			Text:      plain,
			Highlight: plain.Bold(true),
			Success:   plain,
			Warning:   plain,
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		ID:        lipgloss.NewStyle().Faint(true),
		Emotion:   lipgloss.NewStyle().Bold(true),
		Context:   lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
		Text:      lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	}
}

// quadrantStyle colors text with the quadrant's primary color.
func (r *Renderer) quadrantStyle(q affect.Quadrant) lipgloss.Style {
	style := r.styles.Emotion
	if !r.config.Color {
		return style
	}
	if info, ok := r.config.Space.Info(q); ok {
		style = style.Foreground(lipgloss.Color(info.Color.Primary))
	}
	return style
}

func (r *Renderer) quadrantLabel(q affect.Quadrant) string {
	if info, ok := r.config.Space.Info(q); ok {
		return info.Label
	}
	return string(q)
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

// RenderEntryList renders a list of entries according to the configured format
func (r *Renderer) RenderEntryList(list *EntryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list), nil
	case FormatCompact:
		return r.renderCompact(list), nil
	case FormatQuiet:
		return r.renderQuiet(list), nil
	default:
		return r.renderDefault(list), nil
	}
}

func (r *Renderer) renderDefault(list *EntryList) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Recent Check-ins"))
	if since := list.Filters["since"]; since != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Separator.Render("since "))
		b.WriteString(r.styles.Meta.Render(since))
	}
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")

	for _, e := range list.Entries {
		b.WriteString(r.RenderEntry(e))
		b.WriteString(r.rule())
		b.WriteString("\n")
	}

	if list.PerPage > 0 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		b.WriteString(r.styles.Meta.Render(p.FormatSummary()))
		b.WriteString("\n")
		if nav := p.FormatNavigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(nav))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderEntry renders one entry as a meta line, the note and its context.
func (r *Renderer) RenderEntry(e journal.Entry) string {
	var b strings.Builder

	var meta []string
	if r.config.ShowID {
		meta = append(meta, r.styles.ID.Render("["+shortID(e.ID)+"]"))
	}
	meta = append(meta,
		r.styles.Meta.Render(e.CreatedAt.In(r.config.Location).Format("03:04 PM")),
		r.styles.Meta.Render(e.EntryDate),
		r.quadrantStyle(e.Quadrant).Render(e.Emotion),
		r.styles.Meta.Render("("+r.quadrantLabel(e.Quadrant)+")"),
	)
	if e.Energy != nil && e.Pleasantness != nil {
		meta = append(meta, r.styles.Meta.Render(fmt.Sprintf("E%.0f P%.0f", *e.Energy, *e.Pleasantness)))
	}
	b.WriteString(strings.Join(meta, "  "))
	b.WriteString("\n")

	if note := r.note(e.Note); note != "" {
		b.WriteString(r.styles.Text.Render("  " + note))
		b.WriteString("\n")
	}
	if r.config.ShowContext {
		if c := contextSummary(e.Context); c != "" {
			b.WriteString(r.styles.Context.Render("  " + c))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *Renderer) note(n string) string {
	if encryption.IsEncrypted(n) {
		return r.styles.Warning.Render("(encrypted)")
	}
	return n
}

func contextSummary(c *journal.Context) string {
	if c.IsZero() {
		return ""
	}
	var parts []string
	if c.Who != "" {
		parts = append(parts, "with "+c.Who)
	}
	if c.What != "" {
		parts = append(parts, "doing "+c.What)
	}
	if c.PhysicalActivity != "" {
		parts = append(parts, "activity: "+c.PhysicalActivity)
	}
	if c.SleepHours != nil {
		parts = append(parts, fmt.Sprintf("sleep: %gh", *c.SleepHours))
	}
	if c.Body != "" {
		parts = append(parts, "body: "+c.Body)
	}
	return strings.Join(parts, " · ")
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Renderer) renderCSV(list *EntryList) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "entry_date", "created_at", "quadrant", "emotion", "energy", "pleasantness",
		"note", "who", "what", "body", "sleep_hours", "physical_activity"})

	for _, e := range list.Entries {
		c := e.Context
		if c == nil {
			c = &journal.Context{}
		}
		row := []string{
			e.ID,
			e.EntryDate,
			e.CreatedAt.Format(time.RFC3339),
			string(e.Quadrant),
			e.Emotion,
			formatOptional(e.Energy),
			formatOptional(e.Pleasantness),
			e.Note,
			c.Who,
			c.What,
			c.Body,
			formatOptional(c.SleepHours),
			c.PhysicalActivity,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func (r *Renderer) renderTable(list *EntryList) string {
	var b strings.Builder

	b.WriteString("ID\tDate\tTime\tQuadrant\tEmotion\tNote\n")
	b.WriteString(strings.Repeat("-", r.config.Width))
	b.WriteString("\n")

	for _, e := range list.Entries {
		row := []string{
			shortID(e.ID),
			e.EntryDate,
			e.CreatedAt.In(r.config.Location).Format("15:04"),
			string(e.Quadrant),
			e.Emotion,
			truncate(r.note(e.Note), 50),
		}
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderCompact(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		line := fmt.Sprintf("%s %s %s",
			r.styles.Meta.Render(e.EntryDate+" "+e.CreatedAt.In(r.config.Location).Format("15:04")),
			r.quadrantStyle(e.Quadrant).Render(e.Emotion),
			truncate(r.note(e.Note), 80))
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// renderQuiet prints only ids (for scripting)
func (r *Renderer) renderQuiet(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		b.WriteString(e.ID)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMatches renders ranked suggestions for a coordinate.
func (r *Renderer) RenderMatches(c affect.Coordinate, q affect.Quadrant, matches []affect.Match) (string, error) {
	if r.config.Format == FormatJSON {
		return renderJSON(struct {
			Coordinate  affect.Coordinate `json:"coordinate"`
			Quadrant    affect.Quadrant   `json:"quadrant"`
			Suggestions []affect.Match    `json:"suggestions"`
		}{c, q, matches})
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Suggestions"))
	b.WriteString("  ")
	b.WriteString(r.styles.Meta.Render(fmt.Sprintf("energy %.0f, pleasantness %.0f", c.Energy, c.Pleasantness)))
	b.WriteString("  ")
	b.WriteString(r.quadrantStyle(q).Render(r.quadrantLabel(q)))
	b.WriteString("\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "%2d. %s %s\n", i+1,
			r.quadrantStyle(m.Quadrant).Render(fmt.Sprintf("%-14s", m.Emotion)),
			r.styles.Meta.Render(fmt.Sprintf("distance %.1f", m.Distance)))
	}
	return b.String(), nil
}

// RenderEmotions renders catalog words grouped by quadrant.
func (r *Renderer) RenderEmotions(list []affect.CatalogEmotion) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(list)
	case FormatQuiet:
		var b strings.Builder
		for _, e := range list {
			b.WriteString(e.Emotion)
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	if len(list) == 0 {
		return r.styles.Meta.Render("No matching emotions") + "\n", nil
	}
	var b strings.Builder
	var current affect.Quadrant
	for _, e := range list {
		if e.Quadrant != current {
			current = e.Quadrant
			b.WriteString(r.quadrantStyle(current).Render(r.quadrantLabel(current)))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %-14s %s\n", e.Emotion,
			r.styles.Meta.Render(fmt.Sprintf("E%.0f P%.0f", e.Energy, e.Pleasantness)))
	}
	return b.String(), nil
}

// RenderReport renders the analytics report. fields limits the context
// sections; nil shows all.
func (r *Renderer) RenderReport(rep *analytics.Report, fields []analytics.Field) (string, error) {
	if r.config.Format == FormatJSON {
		return renderJSON(rep)
	}

	var b strings.Builder
	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(r.styles.Title.Render(title))
		b.WriteString("\n")
	}

	b.WriteString(r.styles.Title.Render("Mood Report"))
	scope := "all time"
	if rep.From != "" || rep.To != "" {
		scope = fmt.Sprintf("%s → %s", orDash(rep.From), orDash(rep.To))
	}
	b.WriteString("  ")
	b.WriteString(r.styles.Meta.Render(scope + " · " + rep.Timezone))
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Check-ins: %d over %d day%s\n", rep.Entries, rep.Days, plural(rep.Days))
	fmt.Fprintf(&b, "Streak:    %s  (longest %d)\n",
		r.styles.Highlight.Render(fmt.Sprintf("%d day%s", rep.Streak, plural(rep.Streak))), rep.LongestStreak)

	section("Quadrants")
	for _, q := range rep.Quadrants {
		fmt.Fprintf(&b, "  %s %3d  %s\n",
			r.quadrantStyle(q.Dominant).Render(fmt.Sprintf("%-16s", r.quadrantLabel(q.Dominant))),
			q.Count, bar(q.Count, rep.Entries, 30))
	}

	section("Time of day")
	for _, bs := range rep.TimeOfDay {
		if !bs.HasData() {
			fmt.Fprintf(&b, "  %-10s %s\n", bs.Bucket, r.styles.Meta.Render("no data"))
			continue
		}
		var parts []string
		for _, q := range affect.Quadrants() {
			parts = append(parts, r.quadrantStyle(q).Render(fmt.Sprintf("%.0f%%", bs.Percentages[q])))
		}
		fmt.Fprintf(&b, "  %-10s %3d  %s\n", bs.Bucket, bs.Count, strings.Join(parts, " "))
	}

	if fields == nil {
		fields = analytics.Fields()
	}
	for _, f := range fields {
		stats := rep.Context[f]
		if len(stats) == 0 {
			continue
		}
		section("By " + string(f))
		for _, s := range stats {
			fmt.Fprintf(&b, "  %-16s %3d  %s\n", truncate(s.Value, 16), s.Count,
				r.quadrantStyle(s.Dominant).Render(r.quadrantLabel(s.Dominant)))
		}
	}

	if len(rep.Insights) > 0 {
		section("Insights")
		for _, in := range rep.Insights {
			b.WriteString("  • ")
			b.WriteString(r.styles.Success.Render(in))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func bar(n, total, width int) string {
	if total == 0 {
		return ""
	}
	return strings.Repeat("█", n*width/total)
}

func orDash(s string) string {
	if s == "" {
		return "…"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
