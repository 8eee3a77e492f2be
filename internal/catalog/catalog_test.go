package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCatalog = `{
  "brands": ["BrandA", "BrandB", "BrandC"],
  "consoles": [
    {
      "real_name": "x",
      "brand_entries": [
        {"brand": "BrandA", "display_name": "X Console"},
        {"brand": "BrandB", "display_name": "X Clone"}
      ],
      "extra_sources": ["shared_bios"]
    },
    {
      "real_name": "y",
      "brand_entries": [{"brand": "BrandA", "display_name": "Y Console"}],
      "extra_sources": []
    }
  ]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	return path
}

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load(writeCatalog(t, testCatalog))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cat
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if cerr.Kind != kind {
		t.Errorf("Kind = %s, want %s", cerr.Kind, kind)
	}
	if cerr.Hint() == "" {
		t.Error("expected a remediation hint")
	}
}

func TestLoadValid(t *testing.T) {
	cat := loadTestCatalog(t)

	if got := cat.Brands(); len(got) != 3 || got[0] != "BrandA" || got[2] != "BrandC" {
		t.Errorf("Brands() = %v", got)
	}
	if cat.ConsoleCount() != 2 {
		t.Fatalf("ConsoleCount() = %d, want 2", cat.ConsoleCount())
	}
	x := cat.Consoles()[0]
	if x.RealName != "x" {
		t.Errorf("RealName = %q, want %q", x.RealName, "x")
	}
	if len(x.ExtraSources) != 1 || x.ExtraSources[0] != "shared_bios" {
		t.Errorf("ExtraSources = %v", x.ExtraSources)
	}
	if x.DisplayName != "" {
		t.Errorf("catalog record should have no display name, got %q", x.DisplayName)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	wantKind(t, err, KindNotFound)
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load(writeCatalog(t, `{"brands": ["A",], "consoles": [}`))
	wantKind(t, err, KindSyntax)
}

func TestLoadSyntaxErrorReportsLine(t *testing.T) {
	doc := "{\n  \"brands\": [\"A\"],\n  \"consoles\": [}\n}\n"
	_, err := Load(writeCatalog(t, doc))
	wantKind(t, err, KindSyntax)

	var cerr *ConfigError
	errors.As(err, &cerr)
	if cerr.Line != 3 {
		t.Errorf("Line = %d, want 3", cerr.Line)
	}
	if !strings.Contains(cerr.Error(), "line 3") {
		t.Errorf("message %q should name line 3", cerr.Error())
	}
}

func TestLoadTruncated(t *testing.T) {
	_, err := Load(writeCatalog(t, `{"brands": ["A"]`))
	wantKind(t, err, KindSyntax)
}

func TestLoadMissingKeys(t *testing.T) {
	_, err := Load(writeCatalog(t, `{"brands": []}`))
	wantKind(t, err, KindStructure)

	_, err = Load(writeCatalog(t, `{"consoles": []}`))
	wantKind(t, err, KindStructure)
}

func TestLoadTopLevelArray(t *testing.T) {
	_, err := Load(writeCatalog(t, `[1, 2, 3]`))
	wantKind(t, err, KindStructure)
}

func TestLoadErrorMentionsPath(t *testing.T) {
	path := writeCatalog(t, `{"brands": []}`)
	_, err := Load(path)
	var cerr *ConfigError
	if !errors.As(err, &cerr) || cerr.Path != path {
		t.Fatalf("expected error carrying path %q, got %v", path, err)
	}
}

func TestLoadLenientNestedFields(t *testing.T) {
	cat, err := Parse([]byte(`{
		"brands": ["A"],
		"consoles": [
			{"brand_entries": [{"brand": "A", "display_name": "No Name"}, 42], "extra_sources": "oops"}
		]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	choices := cat.ConsolesForBrand("A")
	if len(choices) != 1 {
		t.Fatalf("expected 1 choice, got %d", len(choices))
	}
	if choices[0].Console.RealName != "" {
		t.Errorf("expected empty real name, got %q", choices[0].Console.RealName)
	}
	if len(choices[0].Console.ExtraSources) != 0 {
		t.Errorf("expected malformed extra_sources to be dropped, got %v", choices[0].Console.ExtraSources)
	}
}

func TestConsolesForBrand(t *testing.T) {
	cat := loadTestCatalog(t)

	a := cat.ConsolesForBrand("BrandA")
	if len(a) != 2 {
		t.Fatalf("BrandA: got %d choices, want 2", len(a))
	}
	if a[0].DisplayName != "X Console" || a[1].DisplayName != "Y Console" {
		t.Errorf("BrandA order = [%s, %s]", a[0].DisplayName, a[1].DisplayName)
	}

	b := cat.ConsolesForBrand("BrandB")
	if len(b) != 1 || b[0].DisplayName != "X Clone" || b[0].Console.RealName != "x" {
		t.Errorf("BrandB = %+v", b)
	}
}

func TestConsolesForBrandNoMatch(t *testing.T) {
	cat := loadTestCatalog(t)
	if got := cat.ConsolesForBrand("BrandC"); len(got) != 0 {
		t.Errorf("BrandC: expected no choices, got %d", len(got))
	}
}

func TestEveryListedBrandWithEntriesHasChoices(t *testing.T) {
	cat := loadTestCatalog(t)
	used := make(map[string]bool)
	for _, con := range cat.Consoles() {
		for _, b := range cat.BrandsFor(con) {
			used[b] = true
		}
	}
	for _, brand := range cat.Brands() {
		n := len(cat.ConsolesForBrand(brand))
		if used[brand] && n == 0 {
			t.Errorf("brand %s has entries but no choices", brand)
		}
		if !used[brand] && n != 0 {
			t.Errorf("brand %s has no entries but %d choices", brand, n)
		}
	}
}

func TestSelectedDoesNotMutateCatalog(t *testing.T) {
	cat := loadTestCatalog(t)

	sel := cat.ConsolesForBrand("BrandB")[0].Selected()
	if sel.DisplayName != "X Clone" {
		t.Errorf("DisplayName = %q, want %q", sel.DisplayName, "X Clone")
	}
	sel.ExtraSources[0] = "changed"
	sel.BrandEntries[0].Brand = "changed"

	again := cat.ConsolesForBrand("BrandA")[0]
	if again.Console.DisplayName != "" {
		t.Errorf("catalog record gained a display name: %q", again.Console.DisplayName)
	}
	if again.Console.ExtraSources[0] != "shared_bios" {
		t.Errorf("catalog extra sources mutated: %v", again.Console.ExtraSources)
	}
	if again.Console.BrandEntries[0].Brand != "BrandA" {
		t.Errorf("catalog brand entries mutated: %v", again.Console.BrandEntries)
	}
}

func TestFind(t *testing.T) {
	cat := loadTestCatalog(t)

	ch, ok := cat.Find("x clone", "")
	if !ok || ch.Console.RealName != "x" || ch.DisplayName != "X Clone" {
		t.Errorf("Find by display name = %+v, %v", ch, ok)
	}

	ch, ok = cat.Find("x", "BrandB")
	if !ok || ch.DisplayName != "X Clone" {
		t.Errorf("Find by real name under BrandB = %+v, %v", ch, ok)
	}

	if _, ok := cat.Find("Y Console", "BrandB"); ok {
		t.Error("Y Console should not be found under BrandB")
	}
	if _, ok := cat.Find("missing", ""); ok {
		t.Error("expected no match for unknown console")
	}
}

func TestNewCopiesInput(t *testing.T) {
	consoles := []Console{{RealName: "a", ExtraSources: []string{"bios"}}}
	cat := New(consoles, []string{"A"})
	consoles[0].ExtraSources[0] = "changed"
	if got := cat.Consoles()[0].ExtraSources[0]; got != "bios" {
		t.Errorf("New kept a reference to the caller's slice: %q", got)
	}
}
