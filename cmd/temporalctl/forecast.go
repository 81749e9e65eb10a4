package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tareqmamari/logs-mcp-server/internal/temporal/forecast"
)

var (
	forecastHistory    string
	forecastLength     int
	forecastConfidence float64
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast a numeric history forward by a naive linear drift",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := parseFloatCSV(forecastHistory)
		if err != nil {
			return fmt.Errorf("invalid --history value: %w", err)
		}

		req := forecast.ForecastRequest{
			History:          history,
			PredictionLength: forecastLength,
			ConfidenceLevel:  forecastConfidence,
		}

		result, err := getFacade().Forecast(req)
		if err != nil {
			return err
		}

		return printJSON(cmd, result)
	},
}

func init() {
	forecastCmd.Flags().StringVar(&forecastHistory, "history", "", "comma-separated numeric history, e.g. 1,2,3")
	forecastCmd.Flags().IntVar(&forecastLength, "prediction-length", 1, "number of future points to predict")
	forecastCmd.Flags().Float64Var(&forecastConfidence, "confidence", 0.8, "confidence level in (0, 1)")
}

func parseFloatCSV(s string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
