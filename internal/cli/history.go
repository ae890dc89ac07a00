package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent triage records from the audit database",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 50, "Max records")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.ListRecent(cmd.Context(), limit)
	if err != nil {
		exitErr("history", err)
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
