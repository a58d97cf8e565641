// =============================================================================
// EFT Viewer - Field Names
// =============================================================================
//
// This module maps field ids ("type.number", number zero-padded to three
// digits) to ANSI/NIST-ITL labels. The built-in table covers the record
// types the viewer interprets; a label file (YAML here, or a workbook via
// internal/xlsx) can add or replace entries.
//
// =============================================================================

package fieldnames

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// builtin holds the standard labels.
var builtin = map[string]string{
	// Type-1 Transaction Information Record
	"1.001": "Record Length",
	"1.002": "Version Number",
	"1.003": "File Content",
	"1.004": "Type of Transaction",
	"1.005": "Date",
	"1.006": "Priority",
	"1.007": "Destination Agency",
	"1.008": "Originating Agency",
	"1.009": "Transaction Control Number",
	"1.010": "Transaction Control Reference",
	"1.011": "Native Scanning Resolution",
	"1.012": "Nominal Transmitting Resolution",
	"1.013": "Domain Name",
	"1.014": "Greenwich Mean Time",
	"1.015": "Directory of Character Sets",

	// Type-2 User-Defined Descriptive Text Record
	"2.001": "Record Length",
	"2.002": "Information Designation Character",

	// Type-4 Grayscale Fingerprint Image
	"4.001": "Record Length",
	"4.002": "Image Designation Character",
	"4.003": "Impression Type",
	"4.004": "Finger Position",
	"4.005": "Image Scanning Resolution",
	"4.006": "Horizontal Line Length",
	"4.007": "Vertical Line Length",
	"4.008": "Compression Algorithm",
	"4.009": "Image Data",

	// Type-10 Face/SMT Image
	"10.001": "Record Length",
	"10.002": "Image Designation Character",
	"10.003": "Image Type",
	"10.999": "Image Data",

	// Type-14 Variable-Resolution Fingerprint Image
	"14.001": "Record Length",
	"14.002": "Image Designation Character",
	"14.003": "Finger Position",
	"14.004": "Impression Type",
	"14.005": "Source Agency",
	"14.006": "Horizontal Line Length",
	"14.007": "Vertical Line Length",
	"14.008": "Scale Units",
	"14.009": "Horizontal Pixel Scale",
	"14.010": "Vertical Pixel Scale",
	"14.011": "Compression Algorithm",
	"14.012": "Bits Per Pixel",
	"14.013": "Finger/Palm Position",
	"14.014": "Print Position Descriptors",
	"14.015": "Print Position Coordinates",
	"14.016": "Scanned Horizontal Pixel Scale",
	"14.017": "Scanned Vertical Pixel Scale",
	"14.020": "Comment",
	"14.024": "Quality Metric",
	"14.030": "Device Monitoring Mode",
	"14.999": "Image Data",
}

// =============================================================================
// DICTIONARY
// =============================================================================

// Dictionary is an immutable label table.
type Dictionary struct {
	names map[string]string
}

// Default returns the built-in table.
func Default() *Dictionary {
	return &Dictionary{names: builtin}
}

// With returns a copy of d with overrides applied. Override keys are
// normalized; keys that are not field ids are reported as an error.
func (d *Dictionary) With(overrides map[string]string) (*Dictionary, error) {
	names := maps.Clone(d.names)
	for key, label := range overrides {
		id, ok := NormalizeID(key)
		if !ok {
			return nil, fmt.Errorf("invalid field id %q in label overrides", key)
		}
		names[id] = strings.TrimSpace(label)
	}
	return &Dictionary{names: names}, nil
}

// Lookup returns the label for a field id such as "1.002".
func (d *Dictionary) Lookup(id string) (string, bool) {
	name, ok := d.names[id]
	return name, ok
}

// Name returns the label for (recordType, number), or "Field N" when unknown.
func (d *Dictionary) Name(recordType, number int) string {
	if name, ok := d.names[types.FieldID(recordType, number)]; ok {
		return name
	}
	return fmt.Sprintf("Field %d", number)
}

// DisplayText returns "Name (id)", or just the id when it has no label.
func (d *Dictionary) DisplayText(id string) string {
	if name, ok := d.names[id]; ok {
		return fmt.Sprintf("%s (%s)", name, id)
	}
	return id
}

// FieldDisplayText is DisplayText for (recordType, number).
func (d *Dictionary) FieldDisplayText(recordType, number int) string {
	return d.DisplayText(types.FieldID(recordType, number))
}

// IDs returns every labelled field id ordered by record type, then number.
func (d *Dictionary) IDs() []string {
	ids := slices.Collect(maps.Keys(d.names))
	slices.SortFunc(ids, func(a, b string) int {
		at, an, _ := splitID(a)
		bt, bn, _ := splitID(b)
		if at != bt {
			return at - bt
		}
		return an - bn
	})
	return ids
}

// NormalizeID parses "type.number" with any number padding and returns the
// canonical id, so "14.9" and "14.009" both become "14.009".
func NormalizeID(s string) (string, bool) {
	recordType, number, ok := splitID(strings.TrimSpace(s))
	if !ok {
		return "", false
	}
	return types.FieldID(recordType, number), true
}

func splitID(s string) (int, int, bool) {
	typePart, numberPart, found := strings.Cut(s, ".")
	if !found {
		return 0, 0, false
	}
	recordType, err := strconv.Atoi(typePart)
	if err != nil || recordType < 0 {
		return 0, 0, false
	}
	number, err := strconv.Atoi(numberPart)
	if err != nil || number < 0 {
		return 0, 0, false
	}
	return recordType, number, true
}

// =============================================================================
// LABEL FILES
// =============================================================================

// LoadYAML reads a flat "id: label" mapping.
//
// EXAMPLE:
//
//	"2.030": "Agency Case Number"
//	"14.200": "Vendor Extension"
func LoadYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}

	var labels map[string]string
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("failed to parse label file: %w", err)
	}
	return labels, nil
}
