package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var extractReference string

var extractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "Extract temporal events from free text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reference := time.Now().UTC()
		if extractReference != "" {
			parsed, err := time.Parse(time.RFC3339, extractReference)
			if err != nil {
				return fmt.Errorf("invalid --reference value: %w", err)
			}
			reference = parsed
		}

		events, err := getFacade().Extract(context.Background(), args[0], reference)
		if err != nil {
			return err
		}

		return printJSON(cmd, events)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractReference, "reference", "", "reference time (RFC3339); defaults to now")
}
