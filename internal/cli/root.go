// Package cli implements the triage command-line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssmith129/Medico-2.0-sub000/internal/store"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Rule-based notification triage for the admin dashboard",
	Long:  "Scores, classifies and groups dashboard notifications without a server. JSON in, JSON out.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Audit database path (default: $AUDIT_DB_PATH)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return os.Getenv("AUDIT_DB_PATH")
}

func openStore() (*store.SQLiteStore, error) {
	path := getDBPath()
	if path == "" {
		return nil, fmt.Errorf("no audit database configured (use --db or AUDIT_DB_PATH)")
	}
	return store.NewSQLiteStore(path)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
