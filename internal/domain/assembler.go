package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// HeaderLen is the length of the mandatory header and data section.
	HeaderLen = 105
	// TrailerOffset is where the first additional-data section starts.
	TrailerOffset = 108

	timestampLayout = "200601021504"
	trailerMarker   = "ADD"
	missingUSAF     = "999999"
	missingWBAN     = "99999"
)

// RecordAssembler turns one ISD line into a Record. It is immutable after
// construction and may be shared by all workers.
type RecordAssembler struct {
	trailer *MasterDecoder
}

// NewRecordAssembler returns an assembler using DefaultSections.
func NewRecordAssembler() (*RecordAssembler, error) {
	trailer, err := NewMasterDecoder(DefaultSections()...)
	if err != nil {
		return nil, fmt.Errorf("build section table: %w", err)
	}
	return &RecordAssembler{trailer: trailer}, nil
}

// NewRecordAssemblerWith returns an assembler using a caller-supplied trailer decoder.
func NewRecordAssemblerWith(trailer *MasterDecoder) *RecordAssembler {
	return &RecordAssembler{trailer: trailer}
}

// Decode parses a full observation line. Unparseable numeric fields are left
// absent; a short line, a bad timestamp or a truncated section is an error.
func (a *RecordAssembler) Decode(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < HeaderLen {
		return Record{}, &FormatError{Field: "line", Err: fmt.Errorf("%w: %d characters", ErrShortLine, len(line))}
	}

	usaf := line[4:10]
	wban := line[10:15]
	ts, err := time.Parse(timestampLayout, line[15:27])
	if err != nil {
		return Record{}, &FormatError{Field: "timestamp", Value: line[15:27], Err: ErrInvalidTimestamp}
	}
	latRaw := line[28:34]
	lonRaw := line[34:41]

	rec := Record{
		StationID:             StationID(usaf, wban, latRaw, lonRaw),
		Timestamp:             ts.UTC(),
		DataSource:            line[27:28],
		ReportType:            strings.TrimSpace(line[41:46]),
		Elevation:             intField(line[46:51]),
		CallLetters:           strings.TrimSpace(line[51:56]),
		QualityControlProcess: line[56:60],

		Wind: Wind{
			Direction: IntMeasurement{Value: intField(line[60:63]), Quality: line[63:64]},
			Type:      line[64:65],
			Speed:     Measurement{Value: scaledField(line[65:69], 10), Quality: line[69:70]},
		},
		SkyCondition: SkyCondition{
			CeilingHeight: IntMeasurement{Value: intField(line[70:75]), Quality: line[75:76]},
			Determination: line[76:77],
			CAVOK:         line[77:78],
		},
		Visibility: Visibility{
			Distance:    IntMeasurement{Value: intField(line[78:84]), Quality: line[84:85]},
			Variability: CodedValue{Value: line[85:86], Quality: line[86:87]},
		},
		AirTemperature: Measurement{Value: scaledField(line[87:92], 10), Quality: line[92:93]},
		DewPoint:       Measurement{Value: scaledField(line[93:98], 10), Quality: line[98:99]},
		Pressure:       Measurement{Value: scaledField(line[99:104], 10), Quality: line[104:105]},
		Blocks:         Document{},
	}
	if usaf != missingUSAF {
		rec.USAF = usaf
	}
	if wban != missingWBAN {
		rec.WBAN = wban
	}
	lat, latOK := ParseInt(latRaw)
	lon, lonOK := ParseInt(lonRaw)
	if latOK && lonOK {
		if p, ok := NewPosition(lon, lat); ok {
			rec.Position = &p
		}
	}

	if len(line) >= TrailerOffset && line[HeaderLen:TrailerOffset] == trailerMarker {
		if _, err := a.trailer.Decode(line, TrailerOffset, &rec); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

func intField(s string) *int {
	n, ok := ParseInt(s)
	if !ok {
		return nil
	}
	return &n
}

func scaledField(s string, scale int) *float64 {
	n, ok := ParseInt(s)
	if !ok {
		return nil
	}
	v := float64(n) / float64(scale)
	return &v
}
