package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssmith129/Medico-2.0-sub000/internal/config"
	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
	"github.com/ssmith129/Medico-2.0-sub000/internal/logger"
	"github.com/ssmith129/Medico-2.0-sub000/internal/service"
	"github.com/ssmith129/Medico-2.0-sub000/internal/triage"
	"github.com/ssmith129/Medico-2.0-sub000/pkg/redact"
)

func init() {
	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Triage a JSON array of notifications from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProcess,
	}

	cmd.Flags().Bool("no-grouping", false, "Disable smart grouping for this run")
	cmd.Flags().Bool("audit", false, "Append results to the audit database")

	RootCmd.AddCommand(cmd)
}

func runProcess(cmd *cobra.Command, args []string) {
	noGrouping, _ := cmd.Flags().GetBool("no-grouping")
	audit, _ := cmd.Flags().GetBool("audit")

	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open input", err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		exitErr("read input", err)
	}

	var notifications []domain.NotificationInput
	if err := json.Unmarshal(data, &notifications); err != nil {
		exitErr("parse input", err)
	}

	cfg, err := config.Load()
	if err != nil {
		exitErr("load configuration", err)
	}
	settings := cfg.EngineSettings()
	if noGrouping {
		settings.SmartGrouping = false
	}

	engine := triage.NewEngine(triage.DefaultTables(), settings, logger.NewNop())

	opts := []service.Option{service.WithHistoryLimit(cfg.Audit.HistoryLimit)}
	if audit {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()
		opts = append(opts, service.WithAuditStore(s))
	}

	svc := service.NewTriageService(engine, redact.New(), logger.NewNop(), opts...)

	resp, err := svc.TriageBatch(cmd.Context(), notifications)
	if err != nil {
		exitErr("triage", err)
	}

	b, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(b))
}
