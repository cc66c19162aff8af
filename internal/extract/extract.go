package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"memberscout/internal/config"
	"memberscout/internal/types"
)

// Extractor builds a MemberRecord from a loaded profile document.
//
// Labeled values are found by text adjacency: the first element whose exact
// trimmed text equals the label yields the text of its immediate following
// sibling, or of its parent's following sibling when the element is the last
// child. A label that matches nothing yields the empty string — extraction
// never fails on missing fields.
type Extractor struct {
	cfg    config.ExtractConfig
	logger *slog.Logger
}

// New creates an Extractor using the given label configuration.
func New(cfg config.ExtractConfig, logger *slog.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		logger: logger.With("component", "extractor"),
	}
}

// Extract parses profile HTML and returns one record. It only errors when
// the document itself cannot be parsed.
func (e *Extractor) Extract(pageHTML string) (types.MemberRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return types.MemberRecord{}, fmt.Errorf("parse profile document: %w", err)
	}

	first := labeledValue(doc, e.cfg.FirstNameLabel)
	last := labeledValue(doc, e.cfg.LastNameLabel)

	rec := types.MemberRecord{
		Company:    headingText(doc),
		Contact:    types.JoinContact(first, last),
		Phone:      labeledValue(doc, e.cfg.PhoneLabel),
		Email:      labeledValue(doc, e.cfg.EmailLabel),
		City:       labeledValue(doc, e.cfg.CityLabel),
		Province:   labeledValue(doc, e.cfg.ProvinceLabel),
		Website:    labeledValue(doc, e.cfg.WebsiteLabel),
		MemberType: labeledValue(doc, e.cfg.MemberTypeLabel),
	}

	e.logger.Debug("profile extracted", "company", rec.Company, "contact", rec.Contact)
	return rec, nil
}

// headingText returns the first h1 text, falling back to the first h2.
func headingText(doc *goquery.Document) string {
	h := doc.Find("h1").First()
	if h.Length() == 0 {
		h = doc.Find("h2").First()
	}
	return strings.TrimSpace(h.Text())
}

// labeledValue scans every element in document order for one whose exact
// trimmed text equals label and returns the adjacent value text. An empty
// label is a disabled field and always yields "".
func labeledValue(doc *goquery.Document, label string) string {
	if label == "" {
		return ""
	}

	var value string
	doc.Find("*").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) != label {
			return true
		}
		adjacent := sel.Next()
		if adjacent.Length() == 0 {
			adjacent = sel.Parent().Next()
		}
		value = strings.TrimSpace(adjacent.Text())
		return false
	})
	return value
}
