package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultFile is the catalog file name looked up next to the executable.
const DefaultFile = "consoles.json"

// Console is one device profile of the catalog.
type Console struct {
	RealName     string       `json:"real_name"`
	BrandEntries []BrandEntry `json:"brand_entries"`
	ExtraSources []string     `json:"extra_sources"`

	// DisplayName is empty in the catalog. It is set on the copy handed out
	// by Choice.Selected, since one console is sold under several names.
	DisplayName string `json:"-"`
}

// BrandEntry associates a console with a brand and the name that brand uses.
type BrandEntry struct {
	Brand       string `json:"brand"`
	DisplayName string `json:"display_name"`
}

// UnmarshalJSON decodes a console record field by field. Only key presence
// is checked at load time, so a malformed field is left empty and shows up
// later as a lookup failure instead of rejecting the whole catalog.
func (c *Console) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["real_name"]; ok {
		_ = json.Unmarshal(v, &c.RealName)
	}
	if v, ok := raw["brand_entries"]; ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(v, &entries); err == nil {
			for _, e := range entries {
				var be BrandEntry
				if err := json.Unmarshal(e, &be); err == nil {
					c.BrandEntries = append(c.BrandEntries, be)
				}
			}
		}
	}
	if v, ok := raw["extra_sources"]; ok {
		var extras []json.RawMessage
		if err := json.Unmarshal(v, &extras); err == nil {
			for _, e := range extras {
				var name string
				if err := json.Unmarshal(e, &name); err == nil {
					c.ExtraSources = append(c.ExtraSources, name)
				}
			}
		}
	}
	return nil
}

// Label returns the display name when set, otherwise the real name.
func (c Console) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.RealName
}

func (c Console) clone() Console {
	out := c
	out.BrandEntries = append([]BrandEntry(nil), c.BrandEntries...)
	out.ExtraSources = append([]string(nil), c.ExtraSources...)
	return out
}

// Choice is a console as offered under one brand.
type Choice struct {
	Console     Console
	DisplayName string
}

// Selected returns a copy of the console annotated with the brand-specific
// display name. The catalog entry itself is never modified.
func (ch Choice) Selected() Console {
	out := ch.Console.clone()
	out.DisplayName = ch.DisplayName
	return out
}

// Catalog is the read-only set of consoles and brands loaded at startup.
type Catalog struct {
	consoles []Console
	brands   []string
}

// New builds a catalog from already decoded records.
func New(consoles []Console, brands []string) *Catalog {
	c := &Catalog{
		consoles: make([]Console, 0, len(consoles)),
		brands:   append([]string(nil), brands...),
	}
	for _, con := range consoles {
		c.consoles = append(c.consoles, con.clone())
	}
	return c
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Kind: KindNotFound, Path: path, Err: err}
		}
		return nil, &ConfigError{Kind: KindUnreadable, Path: path, Err: err}
	}
	cat, err := Parse(data)
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return nil, err
	}
	return cat, nil
}

// Parse decodes a catalog document. It requires the top-level "consoles"
// and "brands" keys and nothing more.
func Parse(data []byte) (*Catalog, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ConfigError{Kind: KindSyntax, Line: lineAt(data, syntaxErr.Offset), Err: err}
		}
		return nil, &ConfigError{Kind: KindStructure, Err: fmt.Errorf("top level must be an object: %w", err)}
	}

	rawConsoles, ok := top["consoles"]
	if !ok {
		return nil, &ConfigError{Kind: KindStructure, Err: fmt.Errorf("missing key %q", "consoles")}
	}
	rawBrands, ok := top["brands"]
	if !ok {
		return nil, &ConfigError{Kind: KindStructure, Err: fmt.Errorf("missing key %q", "brands")}
	}

	var consoles []Console
	if err := json.Unmarshal(rawConsoles, &consoles); err != nil {
		return nil, &ConfigError{Kind: KindStructure, Err: fmt.Errorf("key %q: %w", "consoles", err)}
	}
	var brands []string
	if err := json.Unmarshal(rawBrands, &brands); err != nil {
		return nil, &ConfigError{Kind: KindStructure, Err: fmt.Errorf("key %q: %w", "brands", err)}
	}

	return &Catalog{consoles: consoles, brands: brands}, nil
}

// lineAt returns the 1-based line holding byte offset off of data.
func lineAt(data []byte, off int64) int {
	switch {
	case off < 0:
		off = 0
	case off > int64(len(data)):
		off = int64(len(data))
	}
	return bytes.Count(data[:off], []byte("\n")) + 1
}

// Brands returns the brand names in menu order.
func (c *Catalog) Brands() []string {
	return append([]string(nil), c.brands...)
}

// Consoles returns every console in catalog order.
func (c *Catalog) Consoles() []Console {
	out := make([]Console, 0, len(c.consoles))
	for _, con := range c.consoles {
		out = append(out, con.clone())
	}
	return out
}

// ConsoleCount returns the number of console records.
func (c *Catalog) ConsoleCount() int {
	return len(c.consoles)
}

// ConsolesForBrand returns the consoles having a brand entry for brand, in
// catalog order, each paired with that brand's display name. A console
// listing the same brand twice appears once per entry.
func (c *Catalog) ConsolesForBrand(brand string) []Choice {
	var out []Choice
	for _, con := range c.consoles {
		for _, e := range con.BrandEntries {
			if e.Brand == brand {
				out = append(out, Choice{Console: con.clone(), DisplayName: e.DisplayName})
			}
		}
	}
	return out
}

// Find looks a console up by real name or by any brand display name,
// ignoring case. When brand is not empty only that brand's entries match
// and the returned choice carries that brand's display name.
func (c *Catalog) Find(name, brand string) (Choice, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Choice{}, false
	}
	for _, con := range c.consoles {
		for _, e := range con.BrandEntries {
			if brand != "" && e.Brand != brand {
				continue
			}
			if strings.EqualFold(e.DisplayName, name) || strings.EqualFold(con.RealName, name) {
				return Choice{Console: con.clone(), DisplayName: e.DisplayName}, true
			}
		}
	}
	if brand != "" {
		return Choice{}, false
	}
	// Consoles without any brand entry can still be addressed by real name.
	for _, con := range c.consoles {
		if strings.EqualFold(con.RealName, name) {
			return Choice{Console: con.clone(), DisplayName: con.RealName}, true
		}
	}
	return Choice{}, false
}

// BrandsFor returns the distinct brands listing console, in entry order.
func (c *Catalog) BrandsFor(con Console) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range con.BrandEntries {
		if !seen[e.Brand] {
			seen[e.Brand] = true
			out = append(out, e.Brand)
		}
	}
	return out
}
