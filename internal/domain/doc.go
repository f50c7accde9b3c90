// Package domain decodes NOAA Integrated Surface Data (ISD) observation lines.
//
// # Data Source
//
// ISD files are published by NCEI at https://www.ncei.noaa.gov/data/global-hourly/
// as one file per station and year, named "<USAF>-<WBAN>-<YEAR>" and usually
// gzip-compressed. Each line is one observation. The companion station history
// file (isd-history.txt) lists every station with its name and coordinates.
//
// # Line Layout
//
// Every line starts with a fixed-width mandatory header:
//
//	[0,4)    total variable characters
//	[4,10)   USAF station identifier ("999999" = none)
//	[10,15)  WBAN station identifier ("99999" = none)
//	[15,27)  observation time, yyyyMMddHHmm UTC
//	[27,28)  data source flag
//	[28,34)  latitude in thousandths of a degree
//	[34,41)  longitude in thousandths of a degree
//	[41,46)  report type code
//	[46,51)  elevation in metres
//	[51,56)  call letters
//	[56,60)  quality control process
//	[60,105) wind, sky condition, visibility, air temperature, dew point, pressure
//
// If characters [105,108) read "ADD", an additional-data trailer follows. The
// trailer is a sequence of variable sections, each opened by a three-character
// marker: two letters and a digit. The digit distinguishes repeated instances
// of the same section kind (GA1, GA2, ...). Decoding stops at the first marker
// that is not in the table, normally "REM" (remarks) or "EQD" (element quality).
//
// # Decoders
//
// The trailer layout is described declaratively as a tree of [Decoder] values:
//
//	CodeField         raw substring, kept as text
//	MeasurementField  signed integer, optionally divided by a scale
//	Group             named nested document of child decoders
//	SkipSection       recognized marker whose content is only recorded
//	BlockSection      marker whose children decode into the record
//
// Offsets are relative to the section start and the marker occupies [0,3).
// A [MasterDecoder] maps each marker to its section and walks the trailer.
//
// # Missing Values
//
// Numeric fields use runs of 9s as "missing" sentinels (+9999, 99999). They are
// kept verbatim because the meaning differs per field. Fields that do not parse
// as an integer at all are omitted from the output rather than failing the line.
//
// # Identity
//
// A record is identified by its station id and observation time. Station ids
// are derived by [StationID] and are shared with the station history loader so
// both collections join on the same key.
package domain
