package navigation

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// PlainText flattens admin-authored rich text descriptions into a single
// line of text.
func PlainText(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return ""
	}
	if !strings.Contains(description, "<") {
		return strings.Join(strings.Fields(description), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		log.Debugf("Failed to parse description markup, using raw text: %v", err)
		return strings.Join(strings.Fields(description), " ")
	}

	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
