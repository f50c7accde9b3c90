package domain

// Document renders the record in its stored shape: the composite key under
// "_id", header fields at the top level and trailer blocks merged alongside.
// Absent numeric values are omitted.
func (r Record) Document() Document {
	d := Document{"_id": r.ID()}
	if r.USAF != "" {
		d["usaf"] = r.USAF
	}
	if r.WBAN != "" {
		d["wban"] = r.WBAN
	}
	if r.Position != nil {
		d["position"] = r.Position.GeoJSON()
	}
	if r.Elevation != nil {
		d["elevation"] = *r.Elevation
	}
	d["callLetters"] = r.CallLetters
	d["qualityControlProcess"] = r.QualityControlProcess
	d["dataSource"] = r.DataSource
	d["type"] = r.ReportType

	d["airTemperature"] = measurementDoc("value", r.AirTemperature)
	d["dewPoint"] = measurementDoc("value", r.DewPoint)
	d["pressure"] = measurementDoc("value", r.Pressure)
	d["wind"] = Document{
		"direction": intMeasurementDoc("angle", r.Wind.Direction),
		"type":      r.Wind.Type,
		"speed":     measurementDoc("rate", r.Wind.Speed),
	}
	d["visibility"] = Document{
		"distance": intMeasurementDoc("value", r.Visibility.Distance),
		"variability": Document{
			"value":   r.Visibility.Variability.Value,
			"quality": r.Visibility.Variability.Quality,
		},
	}
	ceiling := intMeasurementDoc("value", r.SkyCondition.CeilingHeight)
	ceiling["determination"] = r.SkyCondition.Determination
	d["skyCondition"] = Document{
		"ceilingHeight": ceiling,
		"cavok":         r.SkyCondition.CAVOK,
	}

	if len(r.Sections) > 0 {
		d["sections"] = r.Sections
	}
	for k, v := range r.Blocks {
		d[k] = v
	}
	return d
}

func measurementDoc(key string, m Measurement) Document {
	d := Document{"quality": m.Quality}
	if m.Value != nil {
		d[key] = *m.Value
	}
	return d
}

func intMeasurementDoc(key string, m IntMeasurement) Document {
	d := Document{"quality": m.Quality}
	if m.Value != nil {
		d[key] = *m.Value
	}
	return d
}

// Document renders the station in its stored shape. The station id is kept
// under "st" so observations can be joined on _id.st.
func (s Station) Document() Document {
	d := Document{
		"st":      s.StationID,
		"name":    s.Name,
		"country": s.Country,
	}
	if s.USAF != "" {
		d["usaf"] = s.USAF
	}
	if s.WBAN != "" {
		d["wban"] = s.WBAN
	}
	if s.Position != nil {
		d["position"] = s.Position.GeoJSON()
	}
	if s.Elevation != nil {
		d["elevation"] = *s.Elevation
	}
	if s.Begin != nil {
		d["begin"] = *s.Begin
	}
	if s.End != nil {
		d["end"] = *s.End
	}
	return d
}
