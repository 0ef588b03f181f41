package pk

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TrajectorySummary aggregates a Trajectory into reportable statistics:
// peaks and percentile bands of plasma and effect-site concentration, the
// count of non-fatal diagnostics raised while scheduling, and the final
// infusion count. Grounded on the teacher's simulation-wide Metrics/Print
// pattern, adapted to the continuous concentration trajectories this
// domain produces instead of discrete per-request latencies.
type TrajectorySummary struct {
	PeakCp, PeakCe     float64
	MedianCp, MedianCe float64
	P95Cp, P95Ce       float64
	InfusionCount      int
	WarningCount       int
}

func percentileOf(series []float64, p float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func peakOf(series []float64) float64 {
	peak := 0.0
	for _, v := range series {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Summarize reduces a Trajectory and the infusion/warning counts that
// produced it into a TrajectorySummary.
func Summarize(traj Trajectory, infusionCount, warningCount int) TrajectorySummary {
	return TrajectorySummary{
		PeakCp:        peakOf(traj.Cp),
		PeakCe:        peakOf(traj.Ce),
		MedianCp:      percentileOf(traj.Cp, 0.5),
		MedianCe:      percentileOf(traj.Ce, 0.5),
		P95Cp:         percentileOf(traj.Cp, 0.95),
		P95Ce:         percentileOf(traj.Ce, 0.95),
		InfusionCount: infusionCount,
		WarningCount:  warningCount,
	}
}

// Print displays the summary in the teacher's plain key/value report style.
func (s TrajectorySummary) Print() {
	fmt.Println("=== Infusion Schedule Summary ===")
	fmt.Printf("Infusions Scheduled  : %d\n", s.InfusionCount)
	fmt.Printf("Warnings Raised      : %d\n", s.WarningCount)
	fmt.Printf("Peak Cp / Ce         : %.4f / %.4f\n", s.PeakCp, s.PeakCe)
	fmt.Printf("Median Cp / Ce       : %.4f / %.4f\n", s.MedianCp, s.MedianCe)
	fmt.Printf("P95 Cp / Ce          : %.4f / %.4f\n", s.P95Cp, s.P95Ce)
}
