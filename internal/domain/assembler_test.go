package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHeader = "0243" + "010010" + "99999" + "201301010000" + "4" + "+70933" + "-008667" +
		"FM-12" + "+0009" + "ENJA " + "V020" +
		"3301N00701" + "0120019N" + "0030001N1" + "-00211" + "-00341" + "100401"
	testTrailer = "AA112000091AY101061AY201061GF102991001001999999001081" +
		"KA1999N-00211MA1999999099241MD1710231+9999MW1021"
	testRemarks = "REMSYN100AAXX  01001 01010 11989 21512"
	testLine    = testHeader + "ADD" + testTrailer + testRemarks
)

func newTestAssembler(t *testing.T) *RecordAssembler {
	t.Helper()
	a, err := NewRecordAssembler()
	require.NoError(t, err)
	return a
}

func TestRecordAssembler_Header(t *testing.T) {
	require.Len(t, testHeader, HeaderLen)

	rec, err := newTestAssembler(t).Decode(testLine)
	require.NoError(t, err)

	assert.Equal(t, "u010010", rec.StationID)
	assert.Equal(t, time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), rec.Timestamp)
	assert.Equal(t, "010010", rec.USAF)
	assert.Empty(t, rec.WBAN)
	require.NotNil(t, rec.Position)
	assert.InDelta(t, -8.667, rec.Position.Longitude, 1e-9)
	assert.InDelta(t, 70.933, rec.Position.Latitude, 1e-9)
	require.NotNil(t, rec.Elevation)
	assert.Equal(t, 9, *rec.Elevation)
	assert.Equal(t, "ENJA", rec.CallLetters)
	assert.Equal(t, "V020", rec.QualityControlProcess)
	assert.Equal(t, "4", rec.DataSource)
	assert.Equal(t, "FM-12", rec.ReportType)
}

func TestRecordAssembler_MandatoryData(t *testing.T) {
	rec, err := newTestAssembler(t).Decode(testLine)
	require.NoError(t, err)

	require.NotNil(t, rec.Wind.Direction.Value)
	assert.Equal(t, 330, *rec.Wind.Direction.Value)
	assert.Equal(t, "1", rec.Wind.Direction.Quality)
	assert.Equal(t, "N", rec.Wind.Type)
	require.NotNil(t, rec.Wind.Speed.Value)
	assert.InDelta(t, 7.0, *rec.Wind.Speed.Value, 1e-9)

	require.NotNil(t, rec.SkyCondition.CeilingHeight.Value)
	assert.Equal(t, 1200, *rec.SkyCondition.CeilingHeight.Value)
	assert.Equal(t, "9", rec.SkyCondition.Determination)
	assert.Equal(t, "N", rec.SkyCondition.CAVOK)

	require.NotNil(t, rec.Visibility.Distance.Value)
	assert.Equal(t, 3000, *rec.Visibility.Distance.Value)
	assert.Equal(t, CodedValue{Value: "N", Quality: "1"}, rec.Visibility.Variability)

	require.NotNil(t, rec.AirTemperature.Value)
	assert.InDelta(t, -2.1, *rec.AirTemperature.Value, 1e-9)
	require.NotNil(t, rec.DewPoint.Value)
	assert.InDelta(t, -3.4, *rec.DewPoint.Value, 1e-9)
	require.NotNil(t, rec.Pressure.Value)
	assert.InDelta(t, 1004.0, *rec.Pressure.Value, 1e-9)
	assert.Equal(t, "1", rec.Pressure.Quality)
}

func TestRecordAssembler_Trailer(t *testing.T) {
	rec, err := newTestAssembler(t).Decode(testLine)
	require.NoError(t, err)

	assert.Equal(t, []string{"AA1", "AY1", "AY2", "GF1", "KA1", "MA1", "MD1", "MW1"}, rec.Sections)

	sky, ok := rec.Blocks["skyConditionObservation"].(Document)
	require.True(t, ok)
	assert.Equal(t, Document{"value": "02", "opaque": "99", "quality": "1"}, sky["totalCoverage"])
	assert.Equal(t, Document{"value": 99999, "quality": "9"}, sky["lowestCloudBaseHeight"])

	pressure, ok := rec.Blocks["atmosphericPressureObservation"].(Document)
	require.True(t, ok)
	station := pressure["stationPressure"].(Document)
	assert.InDelta(t, 992.4, station["value"], 1e-9)

	past, ok := rec.Blocks["pastWeatherObservationManual"].([]Document)
	require.True(t, ok)
	assert.Len(t, past, 2)
}

func TestRecordAssembler_NoTrailer(t *testing.T) {
	rec, err := newTestAssembler(t).Decode(testHeader)
	require.NoError(t, err)
	assert.Empty(t, rec.Sections)
	assert.Empty(t, rec.Blocks)

	rec, err = newTestAssembler(t).Decode(testHeader + "REMSYN")
	require.NoError(t, err)
	assert.Empty(t, rec.Sections)
}

func TestRecordAssembler_StripsLineEnding(t *testing.T) {
	rec, err := newTestAssembler(t).Decode(testLine + "\r\n")
	require.NoError(t, err)
	assert.Equal(t, "u010010", rec.StationID)
}

func TestRecordAssembler_ShortLine(t *testing.T) {
	_, err := newTestAssembler(t).Decode(testHeader[:80])
	assert.True(t, errors.Is(err, ErrShortLine))

	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestRecordAssembler_BadTimestamp(t *testing.T) {
	line := testHeader[:15] + "2013XX010000" + testHeader[27:]
	_, err := newTestAssembler(t).Decode(line)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "timestamp", fe.Field)
	assert.True(t, errors.Is(err, ErrInvalidTimestamp))
}

func TestRecordAssembler_TruncatedTrailer(t *testing.T) {
	_, err := newTestAssembler(t).Decode(testHeader + "ADDAA1120")
	assert.True(t, errors.Is(err, ErrTruncatedSection))
}

func TestRecordAssembler_NonNumericFieldsAbsent(t *testing.T) {
	line := []byte(testHeader)
	copy(line[87:92], "ABCDE")
	copy(line[60:63], "   ")

	rec, err := newTestAssembler(t).Decode(string(line))
	require.NoError(t, err)
	assert.Nil(t, rec.AirTemperature.Value)
	assert.Equal(t, "1", rec.AirTemperature.Quality)
	assert.Nil(t, rec.Wind.Direction.Value)
}

func TestRecordAssembler_StationIDFallbacks(t *testing.T) {
	a := newTestAssembler(t)

	t.Run("wban when usaf missing", func(t *testing.T) {
		line := testHeader[:4] + "999999" + "14732" + testHeader[15:]
		rec, err := a.Decode(line)
		require.NoError(t, err)
		assert.Equal(t, "w14732", rec.StationID)
		assert.Empty(t, rec.USAF)
		assert.Equal(t, "14732", rec.WBAN)
	})

	t.Run("coordinates when both missing", func(t *testing.T) {
		line := testHeader[:4] + "999999" + "99999" + testHeader[15:]
		rec, err := a.Decode(line)
		require.NoError(t, err)
		assert.Equal(t, "x+70933-008667", rec.StationID)
	})
}

func TestRecordAssembler_OutOfRangePosition(t *testing.T) {
	line := testHeader[:28] + "+99999" + testHeader[34:]
	rec, err := newTestAssembler(t).Decode(line)
	require.NoError(t, err)
	assert.Nil(t, rec.Position)
}

func TestRecordAssembler_ConcurrentUse(t *testing.T) {
	a := newTestAssembler(t)
	done := make(chan Record, 8)
	for range 8 {
		go func() {
			rec, _ := a.Decode(testLine)
			done <- rec
		}()
	}
	for range 8 {
		rec := <-done
		assert.Len(t, rec.Sections, 8)
		assert.True(t, strings.HasPrefix(rec.StationID, "u"))
	}
}
