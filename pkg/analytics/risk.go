package analytics

// RiskLevel is the three-tier classification of a supplier's contracting
// pattern.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Classify maps a supplier profile to its risk level. High is checked first:
// a quick-award ratio above 50% or an average contract above 1,000,000 is
// high risk regardless of the other metric; above 30% or 500,000 is medium;
// everything else is low. All comparisons are strict. The function is pure,
// recomputed fresh for every profile.
func Classify(p SupplierProfile) RiskLevel {
	if p.QuickAwardRatio > 50 || p.AvgContractValue > 1_000_000 {
		return RiskHigh
	}
	if p.QuickAwardRatio > 30 || p.AvgContractValue > 500_000 {
		return RiskMedium
	}
	return RiskLow
}
