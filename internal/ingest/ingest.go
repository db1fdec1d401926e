// Package ingest prepares uploaded document text for extraction. Container
// parsing (PDF/DOCX) happens before upload; this package normalizes the
// extracted text and handles documents that arrive as raw HTML.
package ingest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRe      = regexp.MustCompile(`\s+`)
	blankLinesRe = regexp.MustCompile(`\n\n\n+`)
)

// PrepareDocument normalizes raw uploaded text into clean plain text. HTML
// input is converted to text first; everything else goes straight through
// line cleanup.
func PrepareDocument(raw string) string {
	if looksLikeHTML(raw) {
		if text, err := ExtractHTMLText(raw); err == nil {
			raw = text
		}
	}
	return CleanText(raw)
}

// looksLikeHTML uses a cheap prefix heuristic; a false negative just means
// the markup survives into the model prompt, which extraction tolerates.
func looksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.HasPrefix(lower, "<html") ||
		strings.Contains(lower[:min(len(lower), 512)], "<body")
}

// ExtractHTMLText strips markup from an HTML document, dropping script,
// style, and navigation noise, and returns line-per-block plain text.
func ExtractHTMLText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", &ExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	doc.Find("script, style, noscript, nav, footer").Remove()

	var lines []string
	doc.Find("h1, h2, h3, h4, p, li, td, div").Each(func(_ int, s *goquery.Selection) {
		// Skip container elements; only leaves contribute text, otherwise
		// every ancestor would repeat its children's content.
		if s.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}

// CleanText normalizes line endings and whitespace while preserving
// structure: headings and bullet lines keep their markers, consecutive blank
// lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + trimmed
	}

	indent := len(line) - len(trimmed)
	content := spaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}
