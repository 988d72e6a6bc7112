package main

import (
	"fmt"

	"shiftbot/internal/shifttype"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:     "types",
	Short:   "List the shift codes and their windows",
	GroupID: "roster",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := shifttype.Load(cfg.ShiftTypesPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, typeViews(table))
		}
		if table.Len() == 0 {
			fmt.Fprintf(out, "No shift codes in %s.\n", cfg.ShiftTypesPath)
			return nil
		}
		fmt.Fprintln(out, renderTypes(table))
		return nil
	},
}
