// =============================================================================
// EFT Viewer - XML Writer Module
// =============================================================================
//
// This module renders a decoded EFT file as an XML report.
//
// XML STRUCTURE:
//
//   <eftFile source="a.eft" records="2" fingerprints="1" valid="true">
//     <summary>2 records | 1 fingerprint</summary>
//     <record n="1" type="1" name="Transaction Info" supported="true">
//       <field id="1.002" name="Version Number">0501</field>
//       <field id="1.003" name="File Content">       <!-- RS/US structure -->
//         <subfield n="0">
//           <item>1</item>
//           <item>1</item>
//         </subfield>
//         <subfield n="1">
//           <item>14</item>
//           <item>01</item>
//         </subfield>
//       </field>
//     </record>
//     <record n="2" type="14" name="Fingerprint" supported="true">
//       <field id="14.999" name="Image Data" binary="true" bytes="1024"/>
//     </record>
//     <warnings>
//       <warning>Record 2: ...</warning>
//     </warnings>
//   </eftFile>
//
// Binary payloads are omitted unless IncludeBinary is set, in which case
// they are written base64-encoded.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/ginjaninja78/eft-viewer/internal/fieldnames"
	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootAttributes are additional attributes for the root element.
	// Example: {"runId": "..."}
	RootAttributes map[string]string

	// IncludeBinary writes binary payloads as base64 text.
	// Default: false
	IncludeBinary bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootAttributes:        make(map[string]string),
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML report of file using the default options.
//
// PARAMETERS:
//   - file:  The decoded file.
//   - names: Field labels; nil uses the built-in table.
func Generate(file *types.File, names *fieldnames.Dictionary) ([]byte, error) {
	return GenerateWithOptions(file, names, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML report with custom options.
func GenerateWithOptions(file *types.File, names *fieldnames.Dictionary, options GenerateOptions) ([]byte, error) {
	if file == nil {
		return nil, fmt.Errorf("no file to render")
	}
	if names == nil {
		names = fieldnames.Default()
	}

	var buffer bytes.Buffer
	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	writeElement(&buffer, buildDocument(file, names, options), options.Indent, 0)
	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

func buildDocument(file *types.File, names *fieldnames.Dictionary, options GenerateOptions) XMLElement {
	source := file.SourcePath()
	if source == "" {
		source = "(no path)"
	}

	doc := newElement("eftFile",
		"source", source,
		"records", strconv.Itoa(file.RecordCount()),
		"fingerprints", strconv.Itoa(file.FingerprintCount()),
		"valid", strconv.FormatBool(file.IsValid()),
	)
	for _, key := range sortedKeys(options.RootAttributes) {
		doc.Attributes = append(doc.Attributes, attr(key, options.RootAttributes[key]))
	}

	summary := newElement("summary")
	summary.Value = file.Summary()
	doc.Children = append(doc.Children, summary)

	for _, r := range file.Records() {
		doc.Children = append(doc.Children, buildRecordElement(r, names, options))
	}

	if warnings := file.Warnings(); len(warnings) > 0 {
		list := newElement("warnings")
		for _, w := range warnings {
			list.Children = append(list.Children, textElement("warning", w))
		}
		doc.Children = append(doc.Children, list)
	}

	return doc
}

func buildRecordElement(r types.Record, names *fieldnames.Dictionary, options GenerateOptions) XMLElement {
	element := newElement("record",
		"n", strconv.Itoa(r.Index()),
		"type", strconv.Itoa(r.Type()),
		"name", r.DisplayName(),
		"supported", strconv.FormatBool(r.Supported()),
	)

	for _, f := range r.Fields() {
		element.Children = append(element.Children, buildFieldElement(f, names, options))
	}
	for _, w := range r.Warnings() {
		element.Children = append(element.Children, textElement("warning", w))
	}
	return element
}

// buildFieldElement writes flat values as text and structured values as
// subfield and item elements.
func buildFieldElement(f types.Field, names *fieldnames.Dictionary, options GenerateOptions) XMLElement {
	element := newElement("field", "id", f.ID(), "name", names.Name(f.RecordType(), f.Number()))

	if f.IsBinary() {
		element.Attributes = append(element.Attributes,
			attr("binary", "true"),
			attr("bytes", strconv.Itoa(f.Len())))
		if options.IncludeBinary {
			element.Attributes = append(element.Attributes, attr("encoding", "base64"))
			element.Value = base64.StdEncoding.EncodeToString(f.Raw())
		}
		return element
	}

	subfields := f.Subfields()
	if len(subfields) == 1 && !subfields[0].IsStructured() {
		element.Value = subfields[0].Value()
		return element
	}

	for _, sf := range subfields {
		child := newElement("subfield", "n", strconv.Itoa(sf.Index()))
		if sf.IsStructured() {
			for _, item := range sf.Items() {
				child.Children = append(child.Children, textElement("item", item))
			}
		} else {
			child.Value = sf.Value()
		}
		element.Children = append(element.Children, child)
	}
	return element
}

// newElement creates an element with attributes given as name/value pairs.
func newElement(name string, attrs ...string) XMLElement {
	element := XMLElement{XMLName: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		element.Attributes = append(element.Attributes, attr(attrs[i], attrs[i+1]))
	}
	return element
}

func textElement(name, value string) XMLElement {
	element := newElement(name)
	element.Value = value
	return element
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

// =============================================================================
// XML SERIALIZATION
// =============================================================================

// writeElement writes an element and its children with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes markup characters. Control characters other than tab,
// newline and carriage return cannot appear in XML 1.0 and become '?'.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch {
		case r == '&':
			buffer.WriteString("&amp;")
		case r == '<':
			buffer.WriteString("&lt;")
		case r == '>':
			buffer.WriteString("&gt;")
		case r == '"':
			buffer.WriteString("&quot;")
		case r == '\'':
			buffer.WriteString("&apos;")
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			buffer.WriteByte('?')
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
