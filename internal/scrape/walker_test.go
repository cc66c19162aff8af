package scrape

import (
	"context"
	"fmt"
	"testing"

	"memberscout/internal/extract"
	"memberscout/internal/types"
)

// stubVisitor serves canned profile documents and fails on demand.
type stubVisitor struct {
	pages map[string]string
	fail  map[string]bool
	snaps []string
}

func (v *stubVisitor) Visit(_ context.Context, url string) (string, error) {
	if v.fail[url] {
		return "", fmt.Errorf("navigation timeout for %s", url)
	}
	page, ok := v.pages[url]
	if !ok {
		return "", fmt.Errorf("no such page %s", url)
	}
	return page, nil
}

func (v *stubVisitor) Snapshot(name string) error {
	v.snaps = append(v.snaps, name)
	return nil
}

func profilePage(company string) string {
	return fmt.Sprintf(`<html><body><h1>%s</h1></body></html>`, company)
}

func linkSet(urls ...string) *types.LinkSet {
	s := types.NewLinkSet()
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

func newTestWalker() *Walker {
	cfg := testConfig()
	return NewWalker(cfg, extract.New(cfg.Extract, testLogger), testLogger)
}

func TestWalkAllProfiles(t *testing.T) {
	visitor := &stubVisitor{pages: map[string]string{
		"https://directory.example/member/a": profilePage("Alpha Signs"),
		"https://directory.example/member/b": profilePage("Beta Neon"),
		"https://directory.example/member/c": profilePage("Gamma Displays"),
	}}

	records, err := newTestWalker().Walk(context.Background(),
		linkSet(
			"https://directory.example/member/a",
			"https://directory.example/member/b",
			"https://directory.example/member/c",
		), visitor)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"Alpha Signs", "Beta Neon", "Gamma Displays"} {
		if records[i].Company != want {
			t.Errorf("records[%d].Company = %q, want %q", i, records[i].Company, want)
		}
	}
}

func TestWalkSkipsFailedItems(t *testing.T) {
	visitor := &stubVisitor{
		pages: map[string]string{
			"https://directory.example/member/a": profilePage("Alpha Signs"),
			"https://directory.example/member/c": profilePage("Gamma Displays"),
		},
		fail: map[string]bool{"https://directory.example/member/b": true},
	}

	links := linkSet(
		"https://directory.example/member/a",
		"https://directory.example/member/b",
		"https://directory.example/member/c",
	)

	records, err := newTestWalker().Walk(context.Background(), links, visitor)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	// The failed item is skipped with no placeholder; relative order of the
	// survivors is preserved.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Company != "Alpha Signs" || records[1].Company != "Gamma Displays" {
		t.Errorf("unexpected records: %+v", records)
	}
	if len(records) > links.Len() {
		t.Errorf("output longer than input link set")
	}
}

func TestWalkEmptyLinkSet(t *testing.T) {
	records, err := newTestWalker().Walk(context.Background(), types.NewLinkSet(), &stubVisitor{})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestWalkStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	visitor := &stubVisitor{pages: map[string]string{
		"https://directory.example/member/a": profilePage("Alpha Signs"),
	}}

	records, err := newTestWalker().Walk(ctx, linkSet("https://directory.example/member/a"), visitor)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(records) != 0 {
		t.Errorf("expected no records after immediate cancel, got %d", len(records))
	}
}

func TestWalkSnapshotNamesAreOrdinal(t *testing.T) {
	cfg := testConfig()
	cfg.Snapshot.Enabled = true
	w := NewWalker(cfg, extract.New(cfg.Extract, testLogger), testLogger)

	visitor := &stubVisitor{pages: map[string]string{
		"https://directory.example/member/a": profilePage("Alpha Signs"),
		"https://directory.example/member/b": profilePage("Beta Neon"),
	}}

	_, err := w.Walk(context.Background(),
		linkSet("https://directory.example/member/a", "https://directory.example/member/b"),
		visitor)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := []string{"profile_000.png", "profile_001.png"}
	if len(visitor.snaps) != 2 || visitor.snaps[0] != want[0] || visitor.snaps[1] != want[1] {
		t.Errorf("snapshots = %v, want %v", visitor.snaps, want)
	}
}
