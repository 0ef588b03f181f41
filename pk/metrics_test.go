package pk

import "testing"

func TestSummarize_PeaksMatchSeries(t *testing.T) {
	traj := Trajectory{Cp: []float64{0, 1, 3, 2, 0.5}, Ce: []float64{0, 0.2, 0.8, 1.1, 0.9}}
	summary := Summarize(traj, 3, 1)

	if summary.PeakCp != 3 {
		t.Errorf("PeakCp = %v, want 3", summary.PeakCp)
	}
	if summary.PeakCe != 1.1 {
		t.Errorf("PeakCe = %v, want 1.1", summary.PeakCe)
	}
	if summary.InfusionCount != 3 || summary.WarningCount != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
}

func TestSummarize_EmptySeries(t *testing.T) {
	summary := Summarize(Trajectory{}, 0, 0)
	if summary.PeakCp != 0 || summary.MedianCp != 0 {
		t.Errorf("expected zero-valued summary for empty trajectory, got %+v", summary)
	}
}
