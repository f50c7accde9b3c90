package domain

import (
	"strconv"
	"strings"
)

// Decoder is one node of a section layout. Offsets are relative to the start
// of the enclosing section, so the same decoder works wherever the section
// appears in the line.
type Decoder interface {
	// Span is the number of characters the decoder reads, counted from the
	// section start.
	Span() int
	// Decode reads from line starting at offset and writes its result into out.
	Decode(line string, offset int, out Document) error
}

// ParseInt parses a signed decimal integer made of digits and sign characters
// only. It reports false for anything else, including the empty string.
func ParseInt(s string) (int, bool) {
	if s == "" || strings.Trim(s, "+-0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func slice(line string, start, end int, field string) (string, error) {
	if start < 0 || end > len(line) || start > end {
		return "", &FormatError{Field: field, Err: ErrTruncatedSection}
	}
	return line[start:end], nil
}

// CodeField copies a substring verbatim.
type CodeField struct {
	Name       string
	Start, End int
}

// Code returns a CodeField reading [start,end) of its section.
func Code(name string, start, end int) CodeField {
	return CodeField{Name: name, Start: start, End: end}
}

func (f CodeField) Span() int { return f.End }

func (f CodeField) Decode(line string, offset int, out Document) error {
	s, err := slice(line, offset+f.Start, offset+f.End, f.Name)
	if err != nil {
		return err
	}
	out[f.Name] = s
	return nil
}

// MeasurementField parses a signed integer. With a scale above one the value
// is divided by it and stored as a float64; otherwise it is stored as an int.
// Text that is not an integer leaves the field out.
type MeasurementField struct {
	Name       string
	Scale      int
	Start, End int
}

// Measure returns an unscaled MeasurementField.
func Measure(name string, start, end int) MeasurementField {
	return MeasurementField{Name: name, Scale: 1, Start: start, End: end}
}

// Scaled returns a MeasurementField divided by scale.
func Scaled(name string, scale, start, end int) MeasurementField {
	return MeasurementField{Name: name, Scale: scale, Start: start, End: end}
}

func (f MeasurementField) Span() int { return f.End }

func (f MeasurementField) Decode(line string, offset int, out Document) error {
	s, err := slice(line, offset+f.Start, offset+f.End, f.Name)
	if err != nil {
		return err
	}
	n, ok := ParseInt(s)
	if !ok {
		return nil
	}
	if f.Scale > 1 {
		out[f.Name] = float64(n) / float64(f.Scale)
	} else {
		out[f.Name] = n
	}
	return nil
}

// Group decodes its children into a nested document stored under Name.
type Group struct {
	Name   string
	Fields []Decoder
	span   int
}

// NewGroup returns a Group over fields. Its span is the largest child span.
func NewGroup(name string, fields ...Decoder) *Group {
	return &Group{Name: name, Fields: fields, span: maxSpan(fields)}
}

func (g *Group) Span() int { return g.span }

func (g *Group) Decode(line string, offset int, out Document) error {
	sub := Document{}
	for _, f := range g.Fields {
		if err := f.Decode(line, offset, sub); err != nil {
			return err
		}
	}
	out[g.Name] = sub
	return nil
}

func maxSpan(fields []Decoder) int {
	span := 0
	for _, f := range fields {
		span = max(span, f.Span())
	}
	return span
}
