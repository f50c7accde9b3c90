package domain

import (
	"errors"
	"fmt"
)

// MarkerLen is the length of a section marker.
const MarkerLen = 3

// Section is a Decoder that is selected by a marker in the trailer. The
// declared marker's last digit is the number of instances the section may
// repeat: "GA6" accepts GA1 through GA6.
type Section interface {
	Decoder
	Marker() string
}

// SkipSection recognizes a marker and its span without decoding any fields.
type SkipSection struct {
	marker string
	span   int
}

// Skip returns a SkipSection for marker covering span characters.
func Skip(marker string, span int) *SkipSection {
	return &SkipSection{marker: marker, span: span}
}

func (s *SkipSection) Marker() string { return s.marker }
func (s *SkipSection) Span() int      { return s.span }

func (s *SkipSection) Decode(string, int, Document) error { return nil }

// BlockSection decodes its children into a document stored under Field. When
// the marker declares more than one instance, every occurrence is appended to
// a list under Field in input order.
type BlockSection struct {
	marker string
	Field  string
	Fields []Decoder
	span   int
}

// Block returns a BlockSection for marker. Its span is the largest child span.
func Block(marker, field string, fields ...Decoder) *BlockSection {
	return &BlockSection{marker: marker, Field: field, Fields: fields, span: maxSpan(fields)}
}

func (b *BlockSection) Marker() string { return b.marker }
func (b *BlockSection) Span() int      { return b.span }

// Repeats reports whether the section may occur more than once.
func (b *BlockSection) Repeats() bool {
	return len(b.marker) == MarkerLen && b.marker[2] > '1'
}

func (b *BlockSection) Decode(line string, offset int, out Document) error {
	result := Document{}
	for _, f := range b.Fields {
		if err := f.Decode(line, offset, result); err != nil {
			return err
		}
	}
	if !b.Repeats() {
		out[b.Field] = result
		return nil
	}
	list, _ := out[b.Field].([]Document)
	out[b.Field] = append(list, result)
	return nil
}

var errBadMarker = errors.New("marker must be two characters and a digit 1-9")

func validateSection(s Section) error {
	m := s.Marker()
	if len(m) != MarkerLen || m[2] < '1' || m[2] > '9' {
		return fmt.Errorf("section %q: %w", m, errBadMarker)
	}
	if s.Span() < MarkerLen {
		return fmt.Errorf("section %q: span %d shorter than marker", m, s.Span())
	}
	return nil
}
