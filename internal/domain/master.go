package domain

import (
	"fmt"
	"strconv"
)

// MasterDecoder walks the additional-data trailer of a line, dispatching each
// marker to its section. It is immutable after construction and safe for
// concurrent use.
type MasterDecoder struct {
	table map[string]Section
}

// NewMasterDecoder builds the marker table. A section declared as "GA6"
// registers GA1 through GA6. When two declarations claim the same marker the
// first one wins.
func NewMasterDecoder(sections ...Section) (*MasterDecoder, error) {
	m := &MasterDecoder{table: make(map[string]Section)}
	for _, s := range sections {
		if err := validateSection(s); err != nil {
			return nil, err
		}
		marker := s.Marker()
		n := int(marker[2] - '0')
		for i := 1; i <= n; i++ {
			key := marker[:2] + strconv.Itoa(i)
			if _, ok := m.table[key]; !ok {
				m.table[key] = s
			}
		}
	}
	return m, nil
}

// Lookup returns the section registered for marker.
func (m *MasterDecoder) Lookup(marker string) (Section, bool) {
	s, ok := m.table[marker]
	return s, ok
}

// Len returns the number of registered markers.
func (m *MasterDecoder) Len() int { return len(m.table) }

// Decode consumes consecutive sections starting at offset, recording each
// marker in rec.Sections and decoded fields in rec.Blocks. It stops at the end
// of the line or at the first unknown marker and returns the offset where it
// stopped. The master has no span of its own.
func (m *MasterDecoder) Decode(line string, offset int, rec *Record) (int, error) {
	if rec.Blocks == nil {
		rec.Blocks = Document{}
	}
	for offset+MarkerLen <= len(line) {
		marker := line[offset : offset+MarkerLen]
		s, ok := m.table[marker]
		if !ok {
			break
		}
		if offset+s.Span() > len(line) {
			return offset, &FormatError{
				Field: marker,
				Value: line[offset:],
				Err:   fmt.Errorf("%w: need %d characters at offset %d", ErrTruncatedSection, s.Span(), offset),
			}
		}
		if err := s.Decode(line, offset, rec.Blocks); err != nil {
			return offset, err
		}
		rec.Sections = append(rec.Sections, marker)
		offset += s.Span()
	}
	return offset, nil
}
