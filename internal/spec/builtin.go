package spec

import "github.com/plalonde/sensorctl/internal/profile"

// Metadata categories every analytics tenant must have active for session
// stitching to work.
var requiredMetadataCategories = []string{
	"service_id",
	"ne_id_sender",
	"service_name",
	"ne_id_reflector",
}

// TWAMP stateful metrics that must be enabled in the ingestion profiles.
var requiredTwampSFMetrics = []string{
	"delayAvg", "delayMax", "delayMin", "delayP25", "delayP50", "delayP75", "delayP95",
	"delayPHi", "delayPLo", "delayPMi", "delayStdDevAvg", "delayVarAvg", "delayVarMax",
	"delayVarMin", "delayVarP25", "delayVarP50", "delayVarP75", "delayVarP95", "delayVarPHi",
	"delayVarPLo", "delayVarPMi", "duration", "fCongestion", "jitterAvg", "jitterMax",
	"jitterP95", "jitterPHi", "jitterPLo", "jitterPMi", "jitterStdDev", "lostBurstMax",
	"packetsLost", "packetsLostPct", "packetsReceived", "periodsLost", "syncQuality", "syncState",
}

func builtinSpecs() []Spec {
	return []Spec{
		{
			Name:    "metadata-categories",
			Title:   "Metadata Category Verification",
			Service: profile.ServiceAnalytics,
			Source:  "/api/v2/metadata-category-mappings/activeMetrics",
			Check:   CheckActiveCategories,
			Require: requiredMetadataCategories,
		},
		{
			Name:       "twamp-sf-metrics",
			Title:      "TWAMP-SF Metrics Verification",
			Service:    profile.ServiceAnalytics,
			Source:     "/api/v2/ingestion-profiles",
			Check:      CheckEnabledMetrics,
			Vendor:     "accedian-twamp",
			ObjectType: "twamp-sf",
			Require:    requiredTwampSFMetrics,
		},
	}
}
