package models

// RevenueObservation is one day of revenue as returned by the store.
// Days with no completed orders are simply absent from the raw data.
type RevenueObservation struct {
	Day     Date    `json:"day"`
	Revenue float64 `json:"revenue"`
}

// DailySeries is a contiguous, strictly ascending daily revenue
// sequence with no gaps. Built once per request and read-only after.
type DailySeries []RevenueObservation

// AnomalyPoint is a flagged day with its method-specific score.
// Z-score: signed standard deviations from the rolling mean.
// IQR: positive distance in IQR units beyond the nearer fence.
type AnomalyPoint struct {
	Day     Date    `json:"day"`
	Revenue float64 `json:"revenue"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason"`
}

// DetectionResult is the full response envelope for anomaly detection.
type DetectionResult struct {
	Series    DailySeries    `json:"series"`
	Anomalies []AnomalyPoint `json:"anomalies"`
	Method    string         `json:"method"`
	Window    int            `json:"window"`
	Threshold float64        `json:"threshold"`
}
