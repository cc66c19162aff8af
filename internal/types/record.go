package types

import "strings"

// MemberRecord is a single extracted directory member.
//
// All fields are plain strings and the empty string is the canonical
// "missing" value. A record is immutable once constructed; records are never
// merged or deduplicated — only profile URLs are.
type MemberRecord struct {
	Company    string
	Contact    string
	Phone      string
	Email      string
	City       string
	Province   string
	Website    string
	MemberType string
}

// ExportHeader is the fixed header row for every export sink, in the same
// order as Row.
var ExportHeader = []string{
	"Company Name",
	"Contact Name",
	"Phone",
	"Email",
	"City",
	"Province",
	"Website",
	"Member Type",
}

// Row returns the record as an export row in the fixed field order.
func (r MemberRecord) Row() []string {
	return []string{
		r.Company,
		r.Contact,
		r.Phone,
		r.Email,
		r.City,
		r.Province,
		r.Website,
		r.MemberType,
	}
}

// JoinContact builds the contact name from first and last name, joined by a
// single space with the result trimmed, so a missing half degrades cleanly.
func JoinContact(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// LinkSet is an insertion-ordered collection of unique profile URLs.
// Membership is exact string equality.
type LinkSet struct {
	seen  map[string]bool
	links []string
}

// NewLinkSet creates an empty LinkSet.
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]bool)}
}

// Add appends a URL if it has not been seen before. It reports whether the
// URL was newly added.
func (s *LinkSet) Add(url string) bool {
	if s.seen[url] {
		return false
	}
	s.seen[url] = true
	s.links = append(s.links, url)
	return true
}

// Contains reports whether the URL is already in the set.
func (s *LinkSet) Contains(url string) bool { return s.seen[url] }

// Len returns the number of unique URLs.
func (s *LinkSet) Len() int { return len(s.links) }

// All returns the URLs in insertion order. The returned slice is shared;
// callers must not mutate it.
func (s *LinkSet) All() []string { return s.links }
