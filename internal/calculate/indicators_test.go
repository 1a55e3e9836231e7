package calculate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Alias1177/scalper/models"
	"github.com/peterldowns/testy/assert"
)

func risingSeries(n int, from, to float64) models.Series {
	series := make(models.Series, n)
	step := (to - from) / float64(n-1)
	for i := range series {
		close := from + step*float64(i)
		series[i] = models.Candle{
			Open:   close - step/2,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000,
		}
	}
	return series
}

func randomWalk(rng *rand.Rand, n int) []float64 {
	closes := make([]float64, n)
	price := 100.0
	for i := range closes {
		price += rng.NormFloat64() * 2
		if price <= 1 {
			price = 1
		}
		closes[i] = price
	}
	return closes
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	period := 4

	sma := SMA(values, period)
	assert.Equal(t, len(values), len(sma))

	for i := range values {
		if i < period-1 {
			assert.True(t, math.IsNaN(sma[i]))
			continue
		}

		var sum float64
		for _, v := range values[i-period+1 : i+1] {
			sum += v
		}
		assert.Equal(t, sum/float64(period), sma[i])
	}

	// Ensure a period longer than the input yields no values.
	for _, v := range SMA(values, 20) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRSIBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		closes := randomWalk(rng, 120)
		rsi := RSI(closes, 14)

		for i, v := range rsi {
			if i < 13 {
				assert.True(t, math.IsNaN(v))
				continue
			}
			if v < 0 || v > 100 {
				t.Fatalf("run %d: rsi[%d] = %v outside [0, 100]", run, i, v)
			}
		}
	}
}

func TestRSIEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{
			name:   "only gains saturate at 100",
			closes: []float64{1, 2, 3, 4, 5, 6},
			want:   100,
		},
		{
			name:   "flat prices saturate at 100",
			closes: []float64{5, 5, 5, 5, 5, 5},
			want:   100,
		},
		{
			name:   "only losses floor at 0",
			closes: []float64{6, 5, 4, 3, 2, 1},
			want:   0,
		},
		{
			name:   "equal gains and losses",
			closes: []float64{10, 11, 10, 11, 10},
			want:   50,
		},
	}

	for _, test := range tests {
		rsi := RSI(test.closes, 5)
		got := rsi[len(rsi)-1]
		if got != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, got)
		}
	}
}

func TestEMAAdjusted(t *testing.T) {
	values := []float64{10, 20, 30}
	span := 3
	alpha := 2.0 / float64(span+1)
	decay := 1 - alpha

	ema := EMA(values, span)

	// The first output equals the first input.
	assert.Equal(t, 10.0, ema[0])

	want1 := (20 + decay*10) / (1 + decay)
	if math.Abs(ema[1]-want1) > 1e-12 {
		t.Errorf("expected ema[1] %v, got %v", want1, ema[1])
	}

	want2 := (30 + decay*20 + decay*decay*10) / (1 + decay + decay*decay)
	if math.Abs(ema[2]-want2) > 1e-12 {
		t.Errorf("expected ema[2] %v, got %v", want2, ema[2])
	}
}

func TestEMAConvergesToRecursive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := randomWalk(rng, 400)
	span := 12

	ema := EMA(values, span)

	alpha := 2.0 / float64(span+1)
	recursive := values[0]
	for i := 1; i < len(values); i++ {
		recursive = alpha*values[i] + (1-alpha)*recursive
	}

	diff := math.Abs(ema[len(ema)-1] - recursive)
	if diff > 1e-9 {
		t.Errorf("expected adjusted and recursive ema to converge, diff %v", diff)
	}
}

func TestEMASkipsLeadingNaN(t *testing.T) {
	ema := EMA([]float64{math.NaN(), math.NaN(), 4, 6}, 3)

	assert.True(t, math.IsNaN(ema[0]))
	assert.True(t, math.IsNaN(ema[1]))
	assert.Equal(t, 4.0, ema[2])
}

func TestMACD(t *testing.T) {
	closes := risingSeries(60, 100, 150).Closes()

	macd, signal := MACD(closes, 12, 26, 9)
	assert.Equal(t, len(closes), len(macd))
	assert.Equal(t, len(closes), len(signal))

	// Both lines start at zero since every EMA starts at the first close.
	assert.Equal(t, 0.0, macd[0])
	assert.Equal(t, 0.0, signal[0])

	// A steady rise keeps the fast EMA above the slow EMA.
	for i := 1; i < len(macd); i++ {
		assert.GreaterThan(t, macd[i], 0.0)
	}
}

func TestCalculate(t *testing.T) {
	series := risingSeries(60, 100, 150)
	cfg := models.DefaultConfig()

	ind := Calculate(series, cfg)
	assert.Equal(t, len(series), ind.Len())
	assert.Equal(t, len(series), len(ind.MAShort))
	assert.Equal(t, len(series), len(ind.MALong))
	assert.Equal(t, len(series), len(ind.RSI))

	last := len(series) - 1
	assert.True(t, math.IsNaN(ind.MALong[cfg.MALongPeriod-2]))
	assert.False(t, math.IsNaN(ind.MALong[cfg.MALongPeriod-1]))
	assert.GreaterThan(t, ind.MAShort[last], ind.MALong[last])
	assert.GreaterThan(t, ind.RSI[last], cfg.RSIOverbought)
}

func TestCalculateShortSeries(t *testing.T) {
	series := risingSeries(30, 100, 110)
	ind := Calculate(series, models.DefaultConfig())

	for _, v := range ind.MALong {
		assert.True(t, math.IsNaN(v))
	}
	assert.False(t, math.IsNaN(ind.MAShort[len(series)-1]))
}
