package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/codemash/internal/conference"
)

func registerQueryCmd(rootCmd *cobra.Command) {
	queryCmd := &cobra.Command{
		Use:   "query <tool> [json-arguments]",
		Short: "run one tool and print its result",
		Example: `  codemash query sessions '{"day_of_week":"MONDAY","duration":60}'
  codemash query speakers '{"speaker_name":"smith"}'
  codemash query --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: runQuery,
	}
	queryCmd.Flags().Bool("list", false, "list the available tools instead of running one")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context(), true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, t := range a.tools.All() {
			fmt.Fprintf(out, "%-10s %s\n", t.Name, t.Title)
		}
		return nil
	}

	var raw json.RawMessage
	if len(args) == 2 {
		raw = json.RawMessage(args[1])
	}

	result, err := a.tools.Call(cmd.Context(), args[0], raw)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), conference.FormatUserError(err))
		return errors.New("query failed")
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
