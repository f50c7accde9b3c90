package domain

import (
	"strings"
	"time"
)

const (
	stationLineLen     = 100
	missingElevation   = -99999
	stationDateLayout  = "20060102"
	maxLongitudeMillis = 180000
	maxLatitudeMillis  = 90000
)

// StationID derives the identifier shared by observations and stations:
// "u"+USAF when USAF is known, else "w"+WBAN when WBAN is known, else
// "x"+lat+lon from the raw coordinate text, else "unknown".
func StationID(usaf, wban, rawLat, rawLon string) string {
	switch {
	case usaf != missingUSAF:
		return "u" + usaf
	case wban != missingWBAN:
		return "w" + wban
	case strings.TrimSpace(rawLat) != "" && strings.TrimSpace(rawLon) != "":
		return "x" + rawLat + rawLon
	default:
		return "unknown"
	}
}

// NewPosition converts coordinates given in thousandths of a degree. It
// reports false when either value is outside the valid range.
func NewPosition(lonMillis, latMillis int) (Position, bool) {
	if lonMillis < -maxLongitudeMillis || lonMillis > maxLongitudeMillis ||
		latMillis < -maxLatitudeMillis || latMillis > maxLatitudeMillis {
		return Position{}, false
	}
	return Position{
		Longitude: float64(lonMillis) / 1000,
		Latitude:  float64(latMillis) / 1000,
	}, true
}

// DecodeStation parses one line of the fixed-width station history file.
// Lines with trailing blanks stripped are padded back to full width.
func DecodeStation(line string) (Station, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 13 {
		return Station{}, &FormatError{Field: "station", Value: line, Err: ErrShortLine}
	}
	if len(line) < stationLineLen {
		line += strings.Repeat(" ", stationLineLen-len(line))
	}

	usaf := line[0:6]
	wban := line[7:12]
	latRaw := line[58:64]
	lonRaw := line[65:72]

	st := Station{
		StationID: StationID(usaf, wban, latRaw, lonRaw),
		Name:      strings.TrimSpace(line[13:42]),
		Country:   strings.TrimSpace(line[46:48]),
		Begin:     stationDate(line[83:91]),
		End:       stationDate(line[92:100]),
	}
	if usaf != missingUSAF {
		st.USAF = usaf
	}
	if wban != missingWBAN {
		st.WBAN = wban
	}
	lat, latOK := ParseInt(strings.TrimSpace(latRaw))
	lon, lonOK := ParseInt(strings.TrimSpace(lonRaw))
	if latOK && lonOK {
		if p, ok := NewPosition(lon, lat); ok {
			st.Position = &p
		}
	}
	if elev, ok := ParseInt(strings.TrimSpace(line[73:79])); ok && elev != missingElevation {
		v := float64(elev) / 10
		st.Elevation = &v
	}
	return st, nil
}

func stationDate(s string) *time.Time {
	if strings.Trim(s, "0123456789") != "" || len(s) != len(stationDateLayout) {
		return nil
	}
	t, err := time.Parse(stationDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
