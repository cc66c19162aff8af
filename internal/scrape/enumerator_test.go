package scrape

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"testing"
	"time"

	"memberscout/internal/config"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Target.URL = "https://directory.example/members"
	cfg.Scrape.SettleDuration = 0
	cfg.Scrape.ControlWait = 0
	return cfg
}

// stubDirectory is an in-memory DirectoryPage whose rendered document
// depends on the selected pagination option.
type stubDirectory struct {
	options []string
	pages   map[string]string
	current string
	optErr  error
	snaps   []string
}

func (d *stubDirectory) URL() string { return "https://directory.example/members" }

func (d *stubDirectory) PaginationOptions(time.Duration) ([]string, error) {
	if d.optErr != nil {
		return nil, d.optErr
	}
	return d.options, nil
}

func (d *stubDirectory) SelectPagination(value string) error {
	if _, ok := d.pages[value]; !ok {
		return fmt.Errorf("unknown option %q", value)
	}
	d.current = value
	return nil
}

func (d *stubDirectory) HTML() (string, error) { return d.pages[d.current], nil }

func (d *stubDirectory) Snapshot(name string) error {
	d.snaps = append(d.snaps, name)
	return nil
}

func directoryHTML(hrefs ...string) string {
	page := "<html><body><ul>"
	for _, h := range hrefs {
		page += fmt.Sprintf(`<li><a href=%q>profile</a></li>`, h)
	}
	page += `</ul><a href="/about">About</a></body></html>`
	return page
}

func TestCollectAcrossOverlappingOptions(t *testing.T) {
	e, err := NewEnumerator(testConfig(), testLogger)
	if err != nil {
		t.Fatalf("new enumerator: %v", err)
	}

	dir := &stubDirectory{
		options: []string{"10", "25"},
		pages: map[string]string{
			"10": directoryHTML("/member/a", "/member/b"),
			"25": directoryHTML("/member/b", "/member/c"),
		},
	}

	set, err := e.Collect(dir)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := []string{
		"https://directory.example/member/a",
		"https://directory.example/member/b",
		"https://directory.example/member/c",
	}
	if !reflect.DeepEqual(set.All(), want) {
		t.Errorf("links = %v, want %v", set.All(), want)
	}
}

func TestCollectMissingControlDegrades(t *testing.T) {
	e, err := NewEnumerator(testConfig(), testLogger)
	if err != nil {
		t.Fatalf("new enumerator: %v", err)
	}

	dir := &stubDirectory{optErr: errors.New("element not found")}

	set, err := e.Collect(dir)
	if err != nil {
		t.Fatalf("missing control must not be fatal, got %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("expected empty link set, got %d links", set.Len())
	}
}

func TestCollectZeroOptions(t *testing.T) {
	e, err := NewEnumerator(testConfig(), testLogger)
	if err != nil {
		t.Fatalf("new enumerator: %v", err)
	}

	set, err := e.Collect(&stubDirectory{})
	if err != nil {
		t.Fatalf("zero options must not be fatal, got %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("expected empty link set, got %d links", set.Len())
	}
}

func TestCollectFiltersNonProfileLinks(t *testing.T) {
	e, err := NewEnumerator(testConfig(), testLogger)
	if err != nil {
		t.Fatalf("new enumerator: %v", err)
	}

	dir := &stubDirectory{
		options: []string{"10"},
		pages: map[string]string{
			"10": `<html><body>
				<a href="/member/a">yes</a>
				<a href="/contact">no</a>
				<a href="mailto:x@y.z">no</a>
				<a href="#top">no</a>
			</body></html>`,
		},
	}

	set, err := e.Collect(dir)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{"https://directory.example/member/a"}
	if !reflect.DeepEqual(set.All(), want) {
		t.Errorf("links = %v, want %v", set.All(), want)
	}
}

func TestCollectSnapshotsPerOption(t *testing.T) {
	cfg := testConfig()
	cfg.Snapshot.Enabled = true
	e, err := NewEnumerator(cfg, testLogger)
	if err != nil {
		t.Fatalf("new enumerator: %v", err)
	}

	dir := &stubDirectory{
		options: []string{"10", "25"},
		pages: map[string]string{
			"10": directoryHTML("/member/a"),
			"25": directoryHTML("/member/a"),
		},
	}

	if _, err := e.Collect(dir); err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := []string{"option_10.png", "option_25.png"}
	if !reflect.DeepEqual(dir.snaps, want) {
		t.Errorf("snapshots = %v, want %v", dir.snaps, want)
	}
}
