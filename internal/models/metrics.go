package models

// Metrics holds the dashboard figures. QuarterlyTarget, TotalCollected and
// PercentComplete mirror the remote dashboard; the remaining fields are
// computed locally from the store.
type Metrics struct {
	QuarterlyTarget    float64
	TotalCollected     float64
	PercentComplete    float64
	TotalEntities      int
	TotalCollections   int
	AvgKgPerCollection float64
	Remaining          float64
}
