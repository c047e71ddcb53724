package stats

import (
	"math"
	"testing"
)

func TestMeanMedian(t *testing.T) {
	if got := Mean([]float64{1, 3}); got != 2 {
		t.Fatalf("mean = %v", got)
	}
	if got := Median([]float64{3, 1}); got != 2 {
		t.Fatalf("median of even count = %v, want 2", got)
	}
	if got := Median([]float64{5, 1, 9}); got != 5 {
		t.Fatalf("median = %v", got)
	}
	if !math.IsNaN(Mean(nil)) || !math.IsNaN(Median(nil)) {
		t.Fatalf("empty input should yield NaN")
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev([]float64{2}); got != 0 {
		t.Fatalf("single value std = %v", got)
	}
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.13808993529939) > 1e-9 {
		t.Fatalf("std = %v", got)
	}
}

func TestRobustOutliers(t *testing.T) {
	vals := []float64{10, 11, 9.5, 10.5, 9.8, 10.2, 8.8, 9.7, 50}
	n, maxZ := RobustOutliers(vals, 3.5)
	if n != 1 {
		t.Fatalf("outliers = %d, want 1", n)
	}
	if maxZ <= 3.5 {
		t.Fatalf("max |z| = %v", maxZ)
	}
}
