package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// printJSON writes v to the command's stdout as indented JSON,
// matching the engine's library surface serialization rules.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}
