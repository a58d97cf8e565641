package tokenizer

import (
	"bytes"

	"github.com/ginjaninja78/eft-viewer/internal/separators"
	"github.com/ginjaninja78/eft-viewer/internal/types"
)

// SplitSubfields splits a text value on RS and each subfield on US.
//
// A value with no RS still yields exactly one subfield. Items are only kept
// for subfields with two or more of them. An empty value yields nil.
func SplitSubfields(value []byte) []types.Subfield {
	if len(value) == 0 {
		return nil
	}

	parts := bytes.Split(value, []byte{separators.RS})
	subfields := make([]types.Subfield, 0, len(parts))
	for i, part := range parts {
		subfields = append(subfields, types.NewSubfield(i, types.ASCII(part), SplitItems(part)))
	}
	return subfields
}

// SplitItems splits a subfield on US. It returns nil unless there are at
// least two items.
func SplitItems(subfield []byte) []string {
	if bytes.IndexByte(subfield, separators.US) < 0 {
		return nil
	}
	parts := bytes.Split(subfield, []byte{separators.US})
	items := make([]string, len(parts))
	for i, part := range parts {
		items[i] = types.ASCII(part)
	}
	return items
}
