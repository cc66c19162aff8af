package extract

import (
	"log/slog"
	"os"
	"testing"

	"memberscout/internal/config"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testExtractor() *Extractor {
	return New(config.DefaultConfig().Extract, testLogger)
}

const profileHTML = `<!DOCTYPE html>
<html>
<body>
	<h1>Acme Signs</h1>
	<div class="profile">
		<span>First name</span><span>Jane</span><br>
		<span>Last name</span><span>Doe</span><br>
		<span>Email</span><span>jane@acme.com</span><br>
		<span>Province</span><span>Ontario</span><br>
		<span>Website</span><span>https://acme.example</span>
	</div>
</body>
</html>`

func TestExtractProfile(t *testing.T) {
	rec, err := testExtractor().Extract(profileHTML)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}

	if rec.Company != "Acme Signs" {
		t.Errorf("company = %q, want %q", rec.Company, "Acme Signs")
	}
	if rec.Contact != "Jane Doe" {
		t.Errorf("contact = %q, want %q", rec.Contact, "Jane Doe")
	}
	if rec.Email != "jane@acme.com" {
		t.Errorf("email = %q, want %q", rec.Email, "jane@acme.com")
	}
	// No "City" label present, and phone/member type are not configured.
	if rec.City != "" {
		t.Errorf("city = %q, want empty", rec.City)
	}
	if rec.Phone != "" || rec.MemberType != "" {
		t.Errorf("phone/memberType = %q/%q, want empty", rec.Phone, rec.MemberType)
	}
	if rec.Province != "Ontario" {
		t.Errorf("province = %q, want %q", rec.Province, "Ontario")
	}
	if rec.Website != "https://acme.example" {
		t.Errorf("website = %q, want %q", rec.Website, "https://acme.example")
	}
}

func TestCompanyFallsBackToH2(t *testing.T) {
	rec, err := testExtractor().Extract(`<html><body><h2>Beta Neon</h2></body></html>`)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if rec.Company != "Beta Neon" {
		t.Errorf("company = %q, want %q", rec.Company, "Beta Neon")
	}
}

func TestCompanyEmptyWithoutHeadings(t *testing.T) {
	rec, err := testExtractor().Extract(`<html><body><p>no headings here</p></body></html>`)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if rec.Company != "" {
		t.Errorf("company = %q, want empty", rec.Company)
	}
}

func TestLabelParentSiblingFallback(t *testing.T) {
	// The label is the last child of its container, so the value comes from
	// the container's following sibling.
	html := `<html><body>
		<div>Contact<br><span>Email</span></div>
		<div>bob@beta.example</div>
	</body></html>`

	rec, err := testExtractor().Extract(html)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if rec.Email != "bob@beta.example" {
		t.Errorf("email = %q, want %q", rec.Email, "bob@beta.example")
	}
}

func TestContactDegradesWithMissingNames(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"first only",
			`<html><body><span>First name</span><span>Jane</span></body></html>`,
			"Jane",
		},
		{
			"last only",
			`<html><body><span>Last name</span><span>Doe</span></body></html>`,
			"Doe",
		},
		{
			"both missing",
			`<html><body><p>nothing labeled</p></body></html>`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := testExtractor().Extract(tt.html)
			if err != nil {
				t.Fatalf("extract error: %v", err)
			}
			if rec.Contact != tt.want {
				t.Errorf("contact = %q, want %q", rec.Contact, tt.want)
			}
		})
	}
}

func TestConfiguredPhoneLabel(t *testing.T) {
	cfg := config.DefaultConfig().Extract
	cfg.PhoneLabel = "Phone"
	e := New(cfg, testLogger)

	rec, err := e.Extract(`<html><body><span>Phone</span><span>555-0101</span></body></html>`)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if rec.Phone != "555-0101" {
		t.Errorf("phone = %q, want %q", rec.Phone, "555-0101")
	}
}

func TestValuesAreTrimmed(t *testing.T) {
	rec, err := testExtractor().Extract(
		`<html><body><span>City</span><span>  Moncton  </span></body></html>`)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if rec.City != "Moncton" {
		t.Errorf("city = %q, want %q", rec.City, "Moncton")
	}
}
