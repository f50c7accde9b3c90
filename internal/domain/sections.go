package domain

// DefaultSections returns the additional-data sections understood by the
// loader, in registration order. Sections that are only recognized so that
// decoding can step over them are declared with Skip.
func DefaultSections() []Section {
	return []Section{
		// Precipitation.
		Block("AA4", "liquidPrecipitation",
			Measure("period", 3, 5),
			Measure("depth", 5, 9),
			Code("condition", 9, 10),
			Code("quality", 10, 11),
		),
		Block("AB1", "liquidPrecipitationMonthlyTotal",
			Measure("depth", 3, 8),
			Code("condition", 8, 9),
			Code("quality", 9, 10),
		),
		Block("AC1", "precipitationObservationHistory",
			Code("duration", 3, 4),
			Code("characteristic", 4, 5),
			Code("quality", 5, 6),
		),
		Block("AD1", "liquidPrecipitationGreatestAmount24HoursMonthly",
			Measure("depth", 3, 8),
			Code("condition", 8, 9),
			Code("occurence1", 9, 13),
			Code("occurence2", 13, 17),
			Code("occurence3", 17, 21),
			Code("quality", 21, 22),
		),
		Block("AE1", "liquidPrecipitationNumberOfDaysWithAmount",
			NewGroup("days001", Measure("value", 3, 5), Code("quality", 5, 6)),
			NewGroup("days010", Measure("value", 6, 8), Code("quality", 8, 9)),
			NewGroup("days050", Measure("value", 9, 11), Code("quality", 11, 12)),
			NewGroup("days100", Measure("value", 12, 14), Code("quality", 14, 15)),
		),
		Block("AG1", "precipitationEstimatedObservation",
			Code("discrepancy", 3, 4),
			Measure("estimatedWaterDepth", 4, 7),
		),
		Block("AH6", "liquidPrecipitationMaxShortDurationMonthly",
			Measure("period", 3, 6),
			Scaled("depth", 10, 6, 10),
			Code("condition", 10, 11),
			Code("endingDateTime", 11, 17),
			Code("quality", 17, 18),
		),
		Block("AI6", "liquidPrecipitationMaxShortDurationMonthly",
			Measure("period", 3, 6),
			Scaled("depth", 10, 6, 10),
			Code("condition", 10, 11),
			Code("endingDateTime", 11, 17),
			Code("quality", 17, 18),
		),

		// Snow.
		Block("AJ1", "snowDepth",
			NewGroup("depth",
				Measure("value", 3, 7),
				Code("condition", 7, 8),
				Code("quality", 8, 9),
			),
			NewGroup("equivalentWaterDepth",
				Scaled("value", 10, 9, 15),
				Code("condition", 15, 16),
				Code("quality", 16, 17),
			),
		),
		Block("AK1", "snowDepthMaxMonthly",
			Measure("depth", 3, 7),
			Code("condition", 7, 8),
			Code("dates", 8, 14),
			Code("quality", 14, 15),
		),
		Block("AL4", "snowAccumulation",
			Measure("period", 3, 5),
			Measure("depth", 5, 8),
			Code("condition", 8, 9),
			Code("quality", 9, 10),
		),
		Block("AM1", "snowAccumulationGreatestAmount24HoursMonthly",
			Scaled("depth", 10, 3, 7),
			Code("condition", 7, 8),
			Code("occurence1", 8, 12),
			Code("occurence2", 12, 16),
			Code("occurence3", 16, 20),
			Code("quality", 20, 21),
		),
		Block("AN1", "snowAccumulationMonthly",
			Measure("period", 3, 6),
			Scaled("depth", 10, 6, 10),
			Code("condition", 10, 11),
			Code("quality", 11, 12),
		),
		Block("AO4", "liquidPrecipitationOccurence",
			Measure("period", 3, 5),
			Scaled("depth", 10, 5, 9),
			Code("condition", 9, 10),
			Code("quality", 10, 11),
		),
		Block("AP4", "liquidPrecipitation15Minutes",
			Scaled("gauge", 10, 3, 7),
			Code("condition", 7, 8),
			Code("quality", 8, 9),
		),

		// Weather occurrence.
		Block("AU9", "presentWeatherObservationASOS",
			Code("intensityProximity", 3, 4),
			Code("descriptor", 4, 5),
			Code("precipitation", 5, 7),
			Code("obscuration", 7, 8),
			Code("otherWeatherPhenomena", 8, 9),
			Code("combinationIndicator", 9, 10),
			Code("quality", 10, 11),
		),
		Block("AW4", "presentWeatherObservation",
			Code("condition", 3, 5),
			Code("quality", 5, 6),
		),
		Block("AX6", "pastWeatherObservationSummaryOfDay",
			NewGroup("atmosphericCondition", Code("value", 3, 5), Code("quality", 5, 6)),
			NewGroup("period", Measure("value", 6, 8), Code("quality", 8, 9)),
		),
		Block("AY2", "pastWeatherObservationManual",
			NewGroup("atmosphericCondition", Code("value", 3, 4), Code("quality", 4, 5)),
			NewGroup("period", Measure("value", 5, 7), Code("quality", 7, 8)),
		),
		Block("AZ2", "pastWeatherObservation",
			NewGroup("atmosphericCondition", Code("value", 3, 4), Code("quality", 4, 5)),
			NewGroup("period", Measure("value", 5, 7), Code("quality", 7, 8)),
		),

		// Climate reference network.
		Skip("CB2", 13),
		Skip("CF3", 9),
		Skip("CG3", 11),
		Skip("CH2", 18),
		Skip("CI1", 31),
		Skip("CN1", 21),
		Skip("CN2", 21),
		Skip("CN3", 19),
		Skip("CN4", 19),
		Skip("CO1", 8),
		Skip("CO9", 11),
		Skip("CR1", 10),
		Skip("CT3", 10),
		Skip("CU3", 16),
		Skip("CW1", 17),
		Skip("CX3", 29),

		Block("ED1", "runwayVisualRange",
			Measure("angle", 3, 5), // tens of degrees
			Code("designator", 5, 6),
			Measure("visibility", 6, 10),
			Code("quality", 10, 11),
		),

		// Cloud and solar.
		Block("GA6", "skyCoverLayer",
			NewGroup("coverage", Code("value", 3, 5), Code("quality", 5, 6)),
			NewGroup("baseHeight", Measure("value", 6, 12), Code("quality", 12, 13)),
			NewGroup("cloudType", Code("value", 13, 15), Code("quality", 15, 16)),
		),
		Block("GD6", "skyCoverSummationState",
			NewGroup("coverage",
				Code("value", 3, 4),
				Code("value2", 4, 6),
				Code("quality", 6, 7),
			),
			NewGroup("height", Measure("value", 7, 13), Code("quality", 13, 14)),
		),
		Block("GE1", "skyConditionObservationSimple",
			Code("convectiveCloud", 3, 4),
			Code("verticalDatum", 4, 10),
			Measure("baseHeightUpperRange", 10, 16),
			Measure("baseHeightLowerRange", 16, 22),
		),
		Block("GF1", "skyConditionObservation",
			NewGroup("totalCoverage",
				Code("value", 3, 5),
				Code("opaque", 5, 7),
				Code("quality", 7, 8),
			),
			NewGroup("lowestCloudCoverage", Code("value", 8, 10), Code("quality", 10, 11)),
			NewGroup("lowCloudGenus", Code("value", 11, 13), Code("quality", 13, 14)),
			NewGroup("lowestCloudBaseHeight", Measure("value", 14, 19), Code("quality", 19, 20)),
			NewGroup("midCloudGenus", Code("value", 20, 22), Code("quality", 22, 23)),
			NewGroup("highCloudGenus", Code("value", 23, 25), Code("quality", 25, 26)),
		),
		Block("GG6", "belowStationCloudLayer",
			NewGroup("coverage", Code("value", 3, 5), Code("quality", 5, 6)),
			NewGroup("topHeight", Measure("value", 6, 11), Code("quality", 11, 12)),
			NewGroup("type", Code("value", 12, 14), Code("quality", 14, 15)),
			NewGroup("top", Code("value", 15, 17), Code("quality", 17, 18)),
		),
		Block("GH1", "hourlySolarRadiation",
			NewGroup("average",
				Scaled("value", 10, 3, 8),
				Code("quality", 8, 9),
				Code("qualityFlag", 9, 10),
			),
			NewGroup("minimum",
				Scaled("value", 10, 10, 15),
				Code("quality", 15, 16),
				Code("qualityFlag", 16, 17),
			),
			NewGroup("maximum",
				Scaled("value", 10, 17, 22),
				Code("quality", 22, 23),
				Code("qualityFlag", 23, 24),
			),
			NewGroup("standardDeviation",
				Scaled("value", 10, 24, 29),
				Code("quality", 30, 31),
				Code("qualityFlag", 31, 32),
			),
		),
		Block("GJ1", "sunshineDuration",
			Measure("value", 3, 7),
			Code("quality", 7, 8),
		),
		Block("GK1", "sunshinePercent",
			Measure("value", 3, 6),
			Code("quality", 6, 7),
		),
		Block("GL1", "sunshineMonth",
			Measure("value", 3, 8),
			Code("quality", 8, 9),
		),
		Skip("GM1", 33),
		Skip("GN1", 31),
		Skip("GO1", 22),
		Skip("GP1", 34),
		Skip("GQ1", 17),
		Block("GR1", "extraterrestrialRadiation",
			Measure("period", 3, 7),
			NewGroup("onHorizontalSurface", Measure("value", 7, 11), Code("quality", 11, 12)),
			NewGroup("normalToSun", Measure("value", 12, 16), Code("quality", 16, 17)),
		),

		Block("HL1", "hail",
			Scaled("size", 10, 3, 6),
			Code("quality", 6, 7),
		),

		// Ground surface.
		Skip("IA1", 6),
		Skip("IA2", 12),
		Skip("IB1", 30),
		Skip("IB2", 16),
		Skip("IC1", 28),

		// Temperature.
		Block("KA4", "extremeAirTemperature",
			Scaled("period", 10, 3, 6),
			Code("code", 6, 7),
			Scaled("value", 10, 7, 12),
			Code("quantity", 12, 13),
		),
		Block("KB3", "averageAirTemperature",
			Measure("period", 3, 6),
			Code("code", 6, 7),
			Scaled("value", 100, 7, 12),
			Measure("quantity", 12, 13),
		),
		Block("KC2", "extremeAirTemperatureMonth",
			Code("code", 3, 4),
			Code("condition", 4, 5),
			Scaled("value", 10, 5, 10),
			Code("dates", 10, 16),
			Code("quality", 16, 17),
		),
		Skip("KD2", 12),
		Skip("KE1", 15),
		Skip("KF1", 9),
		Skip("KG2", 14),

		// Pressure.
		Block("MA1", "atmosphericPressureObservation",
			NewGroup("altimeterSetting", Scaled("value", 10, 3, 8), Code("quality", 8, 9)),
			NewGroup("stationPressure", Scaled("value", 10, 9, 14), Code("quality", 14, 15)),
		),
		Block("MD1", "atmosphericPressureChange",
			NewGroup("tendency", Code("code", 3, 4), Code("quality", 4, 5)),
			NewGroup("quantity3Hours", Scaled("value", 10, 5, 8), Code("quality", 8, 9)),
			NewGroup("quantity24Hours", Scaled("value", 10, 9, 13), Code("quality", 13, 14)),
		),
		Skip("ME1", 9),
		Skip("MF1", 15),
		Skip("MG1", 15),
		Skip("MH1", 15),
		Skip("MK1", 27),
		Block("MV7", "presentWeatherInVicinity",
			Code("condition", 3, 5),
			Code("quality", 5, 6),
		),
		Block("MW7", "presentWeatherObservationManual",
			Code("condition", 3, 5),
			Code("quality", 5, 6),
		),

		// Wind.
		Skip("OA3", 11),
		Skip("OB2", 39),
		Skip("OD3", 14),
		Skip("OE3", 19),

		Block("RH3", "relativeHumidity",
			Measure("period", 3, 6),
			Code("code", 6, 7),
			Measure("percentage", 7, 10),
			Code("derived", 10, 11),
			Code("quality", 11, 12),
		),

		// Marine and soil.
		Block("SA1", "seaSurfaceTemperature",
			Scaled("value", 10, 3, 7),
			Code("quality", 7, 8),
		),
		Block("ST1", "soilTemperature",
			Code("type", 3, 4),
			NewGroup("temperature", Scaled("value", 10, 4, 9), Code("quality", 9, 10)),
			NewGroup("depth", Scaled("value", 10, 10, 14), Code("quality", 14, 15)),
			NewGroup("cover", Code("code", 15, 17), Code("quality", 17, 18)),
			NewGroup("subPlot", Measure("number", 18, 19), Code("quality", 19, 20)),
		),
		Block("UA1", "waveMeasurement",
			Code("method", 3, 4),
			NewGroup("waves",
				Measure("period", 4, 6),
				Scaled("height", 10, 6, 9),
				Code("quality", 9, 10),
			),
			NewGroup("seaState", Code("code", 10, 12), Code("quality", 12, 13)),
		),
		Skip("UG2", 12),
		Skip("WA1", 9),
		Skip("WD1", 23),
		Skip("WG1", 14),
		Skip("WJ1", 22),
	}
}
