package core

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeanStd(t *testing.T) {
	cases := []struct {
		in       []float64
		mean, sd float64
	}{
		{nil, 0, 0},
		{[]float64{5}, 5, 0},
		{[]float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
	}
	for _, c := range cases {
		m, s := MeanStd(c.in)
		if !near(m, c.mean) || !near(s, c.sd) {
			t.Errorf("MeanStd(%v) = %v, %v; want %v, %v", c.in, m, s, c.mean, c.sd)
		}
	}
	if ZScore(9, 5, 2) != 2 || ZScore(1, 1, 0) != 0 {
		t.Error("unexpected z-scores")
	}
}

func TestReturnsAndVolatility(t *testing.T) {
	r := Returns([]float64{100, 110, 99})
	if len(r) != 2 || !near(r[0], 0.1) || !near(r[1], -0.1) {
		t.Errorf("Returns = %v", r)
	}
	if Returns([]float64{1}) != nil {
		t.Error("single price has no returns")
	}
	if !near(Volatility([]float64{100, 110, 99}), 0.1) {
		t.Errorf("Volatility = %v", Volatility([]float64{100, 110, 99}))
	}
	if Volatility([]float64{5, 5, 5}) != 0 {
		t.Error("flat series should have zero volatility")
	}
}

func TestChangeAndAnomaly(t *testing.T) {
	if !near(ChangePercent(110, 100), 10) || ChangePercent(1, 0) != 0 {
		t.Error("unexpected change percent")
	}
	if AnomalyRatio(300, 100) != 3 || AnomalyRatio(0, 0) != 1 || AnomalyRatio(7, 0) != 7 {
		t.Error("unexpected anomaly ratio")
	}
}
