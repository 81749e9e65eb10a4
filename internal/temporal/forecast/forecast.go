// Package forecast implements the ForecastRequest/ForecastResult
// boundary objects and an external-collaborator-shaped Forecaster
// interface. The concrete forecaster here is a naive drift projection
// rather than a real statistical model: the forecaster is treated as
// an external collaborator whose internals are out of scope, included
// only so the boundary and its wiring exist end to end.
package forecast

import (
	"math"

	domerrors "github.com/tareqmamari/logs-mcp-server/internal/errors"
)

// ForecastRequest is the forecast boundary's input.
type ForecastRequest struct {
	History          []float64
	PredictionLength int
	ConfidenceLevel  float64
}

// Validate enforces the request's constraints, returning
// InvalidForecastRequest on the first violation found.
func (r ForecastRequest) Validate() error {
	if len(r.History) == 0 {
		return domerrors.NewInvalidForecastRequest("history must be non-empty")
	}
	for _, v := range r.History {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domerrors.NewInvalidForecastRequest("history must contain only finite numbers")
		}
	}
	if r.PredictionLength <= 0 {
		return domerrors.NewInvalidForecastRequest("prediction_length must be > 0")
	}
	if r.ConfidenceLevel <= 0 || r.ConfidenceLevel >= 1 {
		return domerrors.NewInvalidForecastRequest("confidence_level must be in (0, 1)")
	}
	return nil
}

// ForecastResult is the forecast boundary's output: three equal-length
// sequences.
type ForecastResult struct {
	Median     []float64
	LowerBound []float64
	UpperBound []float64
}

// Forecaster is the abstract external-collaborator capability.
// NaiveDriftForecaster is the one concrete implementation; any other
// forecasting backend need only satisfy this interface.
type Forecaster interface {
	Forecast(req ForecastRequest) (*ForecastResult, error)
}

// NaiveDriftForecaster projects history forward along its average
// step-to-step drift, widening the confidence band with the square root
// of the horizon and with confidence_level / (1 - confidence_level). It
// makes no distributional
// assumptions beyond sample variance of the historical deltas: a
// placeholder a real time-series model would replace.
type NaiveDriftForecaster struct{}

// Forecast implements Forecaster.
func (NaiveDriftForecaster) Forecast(req ForecastRequest) (*ForecastResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := len(req.History)
	last := req.History[n-1]

	var drift float64
	if n > 1 {
		drift = (last - req.History[0]) / float64(n-1)
	}

	deviations := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		step := req.History[i] - req.History[i-1]
		deviations = append(deviations, step-drift)
	}
	stddev := stddevOf(deviations)

	// z is a crude confidence multiplier: wider confidence_level widens
	// the band. Not a true inverse-normal CDF.
	z := req.ConfidenceLevel / (1 - req.ConfidenceLevel)

	median := make([]float64, req.PredictionLength)
	lower := make([]float64, req.PredictionLength)
	upper := make([]float64, req.PredictionLength)

	for h := 1; h <= req.PredictionLength; h++ {
		point := last + drift*float64(h)
		spread := z * stddev * math.Sqrt(float64(h))
		median[h-1] = point
		lower[h-1] = point - spread
		upper[h-1] = point + spread
	}

	return &ForecastResult{Median: median, LowerBound: lower, UpperBound: upper}, nil
}

func stddevOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var variance float64
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))

	return math.Sqrt(variance)
}
