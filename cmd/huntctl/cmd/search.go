package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/huntdex/internal/engine"
)

var (
	searchPhrase   bool
	searchCase     string
	searchContexts []string
	searchOffset   int
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Run a query and print the ranked page of hits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := buildQuery(args[0], searchPhrase, searchCase, searchContexts)
		if err != nil {
			return err
		}
		res, err := eng.Execute(cmd.Context(), engine.Search{Query: q, Offset: searchOffset, Limit: searchLimit})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var completionCmd = &cobra.Command{
	Use:   "complete <text>",
	Short: "Run a query and print its top word completions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := buildQuery(args[0], searchPhrase, searchCase, searchContexts)
		if err != nil {
			return err
		}
		res, err := eng.Execute(cmd.Context(), engine.Completion{Query: q, Limit: searchLimit})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, completionCmd} {
		c.Flags().BoolVar(&searchPhrase, "phrase", false, "match text as a phrase instead of a single word")
		c.Flags().StringVar(&searchCase, "case", "nocase", "case mode: case, nocase, or fuzzy")
		c.Flags().StringSliceVar(&searchContexts, "context", nil, "restrict to these contexts (repeatable, default: the schema's default contexts)")
		c.Flags().IntVar(&searchLimit, "limit", 20, "maximum results")
	}
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "result page offset")

	rootCmd.AddCommand(searchCmd, completionCmd)
}
