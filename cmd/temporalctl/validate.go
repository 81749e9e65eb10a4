package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tareqmamari/logs-mcp-server/internal/temporal/compliance"
)

var (
	validateRule      string
	validateMaxDelay  time.Duration
	validateWindow    time.Duration
	validateTarget    string
	validateReference string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a target time against a compliance rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := time.Parse(time.RFC3339, validateTarget)
		if err != nil {
			return fmt.Errorf("invalid --target value: %w", err)
		}
		reference, err := time.Parse(time.RFC3339, validateReference)
		if err != nil {
			return fmt.Errorf("invalid --reference value: %w", err)
		}

		rule, err := buildRule()
		if err != nil {
			return err
		}

		result, err := getFacade().Validate(rule, target, reference)
		if err != nil {
			return err
		}

		return printJSON(cmd, result)
	},
}

func buildRule() (compliance.Rule, error) {
	switch validateRule {
	case "max-delay":
		return compliance.NewMaxDelayRule(validateMaxDelay)
	case "window":
		return compliance.NewWindowRule(validateWindow)
	default:
		return nil, fmt.Errorf("unknown --rule %q, expected \"max-delay\" or \"window\"", validateRule)
	}
}

func init() {
	validateCmd.Flags().StringVar(&validateRule, "rule", "max-delay", "compliance rule: max-delay or window")
	validateCmd.Flags().DurationVar(&validateMaxDelay, "max-delay", 0, "allowed delay for the max-delay rule")
	validateCmd.Flags().DurationVar(&validateWindow, "window", 0, "allowed window for the window rule")
	validateCmd.Flags().StringVar(&validateTarget, "target", "", "target time (RFC3339)")
	validateCmd.Flags().StringVar(&validateReference, "reference", "", "reference time (RFC3339)")
	_ = validateCmd.MarkFlagRequired("target")
	_ = validateCmd.MarkFlagRequired("reference")
}
