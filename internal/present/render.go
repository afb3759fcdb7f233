package present

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/pagination"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatCards    Format = "cards"
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
	FormatHTML     Format = "html"
)

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

const (
	linkColor     = "#87CEEB"
	titleColor    = "#D6BCFA"
	mutedColor    = "#718096"
	skeletonBlock = "░"
)

var badgeColors = map[Badge]string{
	BadgeRemote:   "#B794F4",
	BadgeHybrid:   "#90CDF4",
	BadgeContract: "#F6E05E",
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	ShowDegraded bool
	// PageLink builds the href for a page control in HTML output.
	PageLink func(page int) string
}

// Render writes one frame of the view in the given format.
func Render(w io.Writer, v View, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v, opts)
	case FormatCSV:
		return writeCSV(w, v, ',')
	case FormatTSV:
		return writeCSV(w, v, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, v, opts)
	case FormatHTML:
		return writeHTML(w, v, opts)
	case FormatTable:
		return writeTable(w, v, opts)
	default:
		return writeCards(w, v, opts)
	}
}

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "cards", "":
		return FormatCards, nil
	case "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

type document struct {
	State      string            `json:"state"`
	Jobs       []models.Job      `json:"jobs"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Pages      []pagination.Item `json:"pages"`
	Degraded   bool              `json:"degraded,omitempty"`
	Notice     string            `json:"notice,omitempty"`
}

// Document is the JSON shape of a view, shared with the HTTP API.
func Document(v View, opts WriteOptions) any {
	doc := document{
		State:      v.State().String(),
		Jobs:       v.Jobs,
		Total:      v.Total,
		Page:       v.Page,
		TotalPages: v.TotalPages,
		Pages:      v.Pages,
	}
	if doc.Jobs == nil || v.Loading {
		doc.Jobs = []models.Job{}
	}
	if doc.Pages == nil {
		doc.Pages = []pagination.Item{}
	}
	if opts.ShowDegraded && v.Degraded {
		doc.Degraded = true
		doc.Notice = noticeText(v)
	}
	return doc
}

func writeJSON(w io.Writer, v View, opts WriteOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document(v, opts))
}

func writeCSV(w io.Writer, v View, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	if v.State() == StatePopulated {
		for _, job := range v.Jobs {
			if err := writer.Write(csvRow(job)); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCards(w io.Writer, v View, opts WriteOptions) error {
	output := termenv.NewOutput(w)
	paint := func(text, color string) string {
		if !opts.ColorEnabled {
			return text
		}
		return output.String(text).Foreground(output.Color(color)).String()
	}

	if opts.ShowDegraded && v.Degraded {
		if _, err := fmt.Fprintln(w, paint(noticeText(v), badgeColors[BadgeContract])); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if v.State() == StateEmpty {
		_, err := fmt.Fprintf(w, "%s\n%s\n", paint(EmptyTitle, titleColor), paint(EmptyHint, mutedColor))
		return err
	}

	for _, card := range Cards(v) {
		var lines []string
		if card.Placeholder {
			lines = []string{
				"┌ " + paint(strings.Repeat(skeletonBlock, 24), mutedColor),
				"│ " + paint(strings.Repeat(skeletonBlock, 16), mutedColor),
				"│ " + paint(strings.Repeat(skeletonBlock, 30), mutedColor),
				"└ " + paint(strings.Repeat(skeletonBlock, 12), mutedColor),
			}
		} else {
			title := paint(card.Title, titleColor)
			for _, badge := range card.Badges {
				title += " " + paint("["+string(badge)+"]", badgeColors[badge])
			}
			lines = []string{"┌ " + title}
			if card.Company != "" {
				lines = append(lines, "│ "+card.Company)
			}
			lines = append(lines,
				"│ Location: "+card.Location,
				"│ Type:     "+card.Type,
				"│ Posted:   "+card.Posted,
			)
			if card.Benefits != "" {
				lines = append(lines, "│ Pay:      "+card.Benefits)
			}
			lines = append(lines, "└ Apply:    "+displayLink(card.URL, output, opts))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		fmt.Fprintln(w)
	}

	if v.State() == StatePopulated && len(v.Pages) > 0 {
		_, err := fmt.Fprintln(w, PagerLine(v))
		return err
	}
	return nil
}

func writeTable(w io.Writer, v View, opts WriteOptions) error {
	if v.State() == StateEmpty {
		_, err := fmt.Fprintln(w, EmptyTitle)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, card := range Cards(v) {
		fmt.Fprintln(tw, strings.Join(tableRow(card, output, opts), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if v.State() == StatePopulated && len(v.Pages) > 0 {
		_, err := fmt.Fprintln(w, PagerLine(v))
		return err
	}
	return nil
}

func writeMarkdown(w io.Writer, v View, opts WriteOptions) error {
	if opts.ShowDegraded && v.Degraded {
		if _, err := fmt.Fprintf(w, "> %s\n\n", noticeText(v)); err != nil {
			return err
		}
	}
	switch v.State() {
	case StateLoading:
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	case StateEmpty:
		_, err := fmt.Fprintf(w, "**%s**\n\n%s\n", EmptyTitle, EmptyHint)
		return err
	}
	for _, card := range Cards(v) {
		urlLine := "  URL: -"
		if card.URL != "" {
			urlLine = fmt.Sprintf("  URL: [Apply now](<%s>)", card.URL)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", card.Title, card.Company),
			fmt.Sprintf("  Location: %s", card.Location),
			fmt.Sprintf("  Type: %s", card.Type),
			fmt.Sprintf("  Posted: %s", card.Posted),
		}
		if card.Benefits != "" {
			lines = append(lines, fmt.Sprintf("  Pay: %s", card.Benefits))
		}
		lines = append(lines, urlLine)
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if len(v.Pages) > 0 {
		_, err := fmt.Fprintf(w, "\n%s\n", PagerLine(v))
		return err
	}
	return nil
}

// PagerLine renders the page controls, marking the current page.
func PagerLine(v View) string {
	parts := make([]string, 0, len(v.Pages))
	for _, item := range v.Pages {
		if !item.Ellipsis && item.Page == v.Page {
			parts = append(parts, "["+strconv.Itoa(item.Page)+"]")
			continue
		}
		parts = append(parts, item.String())
	}
	return fmt.Sprintf("Page %d of %d (%d jobs): %s", v.Page, v.TotalPages, v.Total, strings.Join(parts, " "))
}

func noticeText(v View) string {
	if strings.TrimSpace(v.Notice) != "" {
		return v.Notice
	}
	return DegradedNotice
}

func csvHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"location",
		"type",
		"post_date",
		"benefits",
		"url",
	}
}

func csvRow(job models.Job) []string {
	return []string{
		job.ID,
		job.Title,
		job.CompanyName(),
		job.Location,
		job.Type,
		job.PostDate,
		job.Benefits,
		job.URL,
	}
}

func tableHeader() []string {
	return []string{
		"title",
		"company",
		"location",
		"type",
		"url",
	}
}

func tableRow(card Card, output *termenv.Output, opts WriteOptions) []string {
	if card.Placeholder {
		block := strings.Repeat(skeletonBlock, 8)
		return []string{block, block, block, block, block}
	}
	return []string{
		card.Title,
		card.Company,
		card.Location,
		card.Type,
		displayLink(card.URL, output, opts),
	}
}

func displayLink(raw string, output *termenv.Output, opts WriteOptions) string {
	if raw == "" {
		return "-"
	}
	display := raw
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		display = shortURLLabel(raw)
	}
	if opts.ColorEnabled {
		display = output.String(display).Foreground(output.Color(linkColor)).String()
	}
	if opts.Hyperlinks {
		display = hyperlink(raw, display)
	}
	return display
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
