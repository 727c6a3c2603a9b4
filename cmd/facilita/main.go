// Package main provides the CLI entrypoint for facilita.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/facilita-cr/facilita/internal/config"
	"github.com/facilita-cr/facilita/internal/dashui"
	"github.com/facilita-cr/facilita/internal/formui"
	"github.com/facilita-cr/facilita/internal/ingest"
	"github.com/facilita-cr/facilita/internal/model"
	"github.com/facilita-cr/facilita/internal/report"
	"github.com/facilita-cr/facilita/internal/store"
)

var (
	surveyDBPath string
	surveySingle bool

	reportDBPath      string
	reportFacilitator string
	reportChart       string
	reportNoExpand    bool

	exportDBPath string
	exportOutput string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "facilita",
		Short:         "Facilitator evaluation survey and dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSurveyCmd,
	}

	rootCmd.Flags().StringVar(&surveyDBPath, "db", "", "path to the response database (default: XDG data dir)")
	rootCmd.Flags().BoolVar(&surveySingle, "single-facilitator", false, "accept exactly one facilitator per evaluation")

	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runSurveyCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "single-facilitator", &surveySingle, fileCfg.Survey.SingleFacilitator)
	roster := fileCfg.Survey.Roster
	if len(roster) == 0 {
		roster = model.DefaultRoster
	}

	st, err := openStore(surveyDBPath)
	if err != nil {
		return err
	}
	defer closeStore(st)

	form := formui.NewModel(ingest.New(st), roster, surveySingle)
	program := tea.NewProgram(form, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run survey form: %w", err)
	}
	return nil
}

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive evaluation dashboard",
		Args:  cobra.NoArgs,
		RunE:  runDashboardCmd,
	}
	addReportFlags(cmd)
	return cmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	scope, opts, err := resolveReportSettings(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(reportDBPath)
	if err != nil {
		return err
	}
	defer closeStore(st)

	dash := dashui.NewModel(st, scope, opts)
	program := tea.NewProgram(dash, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the evaluation report to stdout",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	addReportFlags(cmd)
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	scope, opts, err := resolveReportSettings(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(reportDBPath)
	if err != nil {
		return err
	}
	defer closeStore(st)

	rep, err := report.Build(context.Background(), st, scope, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := report.Render(out, rep, report.AutoWidth(), false); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportDBPath, "db", "", "path to the response database (default: XDG data dir)")
	cmd.Flags().StringVar(&reportFacilitator, "facilitator", "", "limit to one facilitator (default: all)")
	cmd.Flags().StringVar(&reportChart, "chart", "alternate", "chart style: pie, bar, or alternate")
	cmd.Flags().BoolVar(&reportNoExpand, "no-expand", false, "match the joined facilitator field as a single value")
}

func resolveReportSettings(cmd *cobra.Command) (report.Scope, report.Options, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return report.ScopeAll, report.Options{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "chart", &reportChart, fileCfg.Report.Chart)
	expand := !reportNoExpand
	if fileCfg.Report.Expand != nil && !cmd.Flags().Changed("no-expand") {
		expand = *fileCfg.Report.Expand
	}

	chart, err := report.ParseChartMode(reportChart)
	if err != nil {
		return report.ScopeAll, report.Options{}, err
	}
	opts := report.Options{Expand: expand, Chart: chart}

	scope := report.ScopeAll
	if name := strings.TrimSpace(reportFacilitator); name != "" {
		scope = report.Scope(name)
	}
	return scope, opts, nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all responses as CSV",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportDBPath, "db", "", "path to the response database (default: XDG data dir)")
	cmd.Flags().StringVar(&exportOutput, "output", "", "output file (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore(exportDBPath)
	if err != nil {
		return err
	}
	defer closeStore(st)

	responses, err := st.ListAll(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if exportOutput != "" {
		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				logErrf("failed to close output file: %v\n", cerr)
			}
		}()
		out = file
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(model.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range responses {
		if err := writer.Write(r.Row()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	roster := make([]string, 0, len(model.DefaultRoster))
	for _, name := range model.DefaultRoster {
		roster = append(roster, fmt.Sprintf("#   %q,", name))
	}
	return fmt.Sprintf(`# facilita configuration
# Uncomment a value to enable it. CLI flags override config values.

[survey]
# roster = [
%s
# ]
# single-facilitator = false   # Accept exactly one facilitator per evaluation

[report]
# expand = true                # Split multi-facilitator rows for counting
# chart = "alternate"          # pie | bar | alternate
`, strings.Join(roster, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
