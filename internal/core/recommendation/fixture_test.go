package recommendation

// passGates returns a hard-gate summary where every gate passes.
func passGates() HardGateSummary {
	return HardGateSummary{
		HardGateOverallStatus: "PASS",
		MassCheck:             "PASS",
		CGCheck:               "PASS",
		RunwayCheck:           "PASS",
		ClimbCheck:            "PASS",
		OGECheck:              "PASS (rotary only)",
		FuelCheck:             "PASS",
		SecurityCheck:         "PASS",
	}
}

func components(delivery, safety, efficiency float64) []ScoreComponent {
	return []ScoreComponent{
		{Metric: "delivery", Weight: 0.5, Value: delivery},
		{Metric: "safety", Weight: 0.3, Value: safety},
		{Metric: "efficiency", Weight: 0.2, Value: efficiency},
	}
}

// testContext mirrors the three-COA Timika mission.
func testContext() *MissionContext {
	return &MissionContext{
		SystemOutput: &SystemOutput{
			Version:             "aerobridge.output.v2.1.3.preflight.multi_asset",
			AnalysisMode:        "pre_flight",
			GeneratedAtUTC:      "2026-02-18T06:40:00Z",
			ObjectiveMode:       "Hybrid Delivery-Safety",
			PriorityWeights:     PriorityWeights{Delivery: 0.5, Safety: 0.3, Efficiency: 0.2},
			RecommendationLimit: 3,
		},
		MissionBrief: MissionBrief{
			Origin:       "Timika (WAYY)",
			TargetPoints: []string{"Ilaga (WAYL)", "Sinak (WABS)", "Wamena (WAVV)"},
			FleetAvailable: []FleetItem{
				{AircraftType: "Cessna 208B", Category: "Fixed Wing", Quantity: 1},
				{AircraftType: "H225M Caracal", Category: "Rotary Wing", Quantity: 1},
			},
			MissionObjective: "Mission from Timika to three different points prioritizing payload.",
		},
		Recommendations: []Recommendation{
			{
				Name: "COA-1 Payload Dominant",
				SummaryGlobal: SummaryGlobal{
					TotalPayloadDeliveredKg: 1420, TotalFuelBurnKg: 620, TotalMissionTimeMin: 108,
					TotalDistanceNm: 92, TotalRiskIndex: 0.29, OperationalStatus: "GO",
				},
				AircraftAllocation: []AircraftAllocation{
					{
						AircraftType: "Cessna 208B", QuantityUsed: 1,
						RouteSequence: []string{"Timika", "Ilaga", "Sinak"},
						ServedPoints:  []string{"Ilaga", "Sinak"}, PayloadCarriedKg: 520,
						PayloadDistribution: []PayloadDist{{Location: "Ilaga", DeliveredKg: 260}, {Location: "Sinak", DeliveredKg: 260}},
					},
					{
						AircraftType: "H225M Caracal", QuantityUsed: 1,
						RouteSequence: []string{"Timika", "Wamena", "Timika"},
						ServedPoints:  []string{"Wamena"}, PayloadCarriedKg: 900,
					},
				},
				HardGateSummary: passGates(),
				ScoreBreakdown:  ScoreBreakdown{Components: components(0.86, 0.72, 0.68), FinalScore: 0.79},
			},
			{
				Name: "COA-2 Safety-Buffered Rotary",
				SummaryGlobal: SummaryGlobal{
					TotalPayloadDeliveredKg: 1500, TotalFuelBurnKg: 780, TotalMissionTimeMin: 132,
					TotalDistanceNm: 95, TotalRiskIndex: 0.21, OperationalStatus: "GO",
				},
				AircraftAllocation: []AircraftAllocation{
					{
						AircraftType: "H225M Caracal", QuantityUsed: 1,
						RouteSequence: []string{"Timika", "Ilaga", "Sinak", "Timika"},
						ServedPoints:  []string{"Ilaga", "Sinak"}, PayloadCarriedKg: 1100,
					},
					{
						AircraftType: "Cessna 208B", QuantityUsed: 1,
						RouteSequence: []string{"Timika", "Wamena", "Timika"},
						ServedPoints:  []string{"Wamena"}, PayloadCarriedKg: 400,
					},
				},
				HardGateSummary: passGates(),
				ScoreBreakdown:  ScoreBreakdown{Components: components(0.90, 0.84, 0.55), FinalScore: 0.81},
			},
			{
				Name: "COA-3 Staged Buffer Strategy",
				SummaryGlobal: SummaryGlobal{
					TotalPayloadDeliveredKg: 1200, TotalFuelBurnKg: 920, TotalMissionTimeMin: 156,
					TotalDistanceNm: 128, TotalRiskIndex: 0.18, OperationalStatus: "CONDITIONAL_GO",
				},
				AircraftAllocation: []AircraftAllocation{
					{
						AircraftType: "Cessna 208B", QuantityUsed: 1,
						RouteSequence: []string{"Timika", "Wamena", "Timika"},
						ServedPoints:  []string{"Wamena"}, PayloadCarriedKg: 600,
					},
					{
						AircraftType: "H225M Caracal", QuantityUsed: 1,
						RouteSequence: []string{"Timika", "Ilaga", "Timika"},
						ServedPoints:  []string{"Ilaga"}, PayloadCarriedKg: 600,
					},
				},
				HardGateSummary: passGates(),
				ScoreBreakdown:  ScoreBreakdown{Components: components(0.74, 0.88, 0.40), FinalScore: 0.70},
			},
		},
	}
}
