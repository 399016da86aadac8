package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aceguard-demo/report"
	"aceguard-demo/seed"
)

var (
	reportFormat    string
	reportOutput    string
	reportFont      string
	reportSkipTime  bool
	reportSkipMoney bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the compliance report to a file",
	Long: `Export the sample AceGuard report of the demo repository.

Examples:
  # Markdown report into ./reports
  aceguard report

  # Mitigation plan as CSV
  aceguard report --format csv --output /tmp/reports

  # PDF compliance report without the timeline section
  aceguard report --format pdf --skip-timeline`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "markdown", "Report format (markdown, csv, pdf, json)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output directory (overrides reports.directory)")
	reportCmd.Flags().StringVar(&reportFont, "font", "", "TrueType font for PDF output (overrides reports.font_path)")
	reportCmd.Flags().BoolVar(&reportSkipTime, "skip-timeline", false, "Leave the timeline out of compliance reports")
	reportCmd.Flags().BoolVar(&reportSkipMoney, "skip-financial", false, "Leave the financial impact out of compliance reports")

	viper.BindPFlag("report.format", reportCmd.Flags().Lookup("format"))
	viper.BindPFlag("report.output", reportCmd.Flags().Lookup("output"))
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return err
	}

	dir := cfg.Reports.Directory
	if reportOutput != "" {
		dir = reportOutput
	}
	font := cfg.Reports.FontPath
	if reportFont != "" {
		font = reportFont
	}

	opts := report.AllSections()
	opts.Timeline = !reportSkipTime
	opts.FinancialImpact = !reportSkipMoney

	generator := report.NewGenerator(dir, font, seed.SampleReport(), seed.ComplianceData())
	path, err := generator.Save(format, opts)
	if err != nil {
		return fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	summary := generator.Summary()
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved: %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "  Repository:         %s\n", summary.Repository)
	fmt.Fprintf(cmd.OutOrStdout(), "  Prohibited:         %d\n", summary.ProhibitedCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  High-Risk:          %d\n", summary.HighRiskCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  Financial exposure: %s\n", report.FormatCurrency(summary.FinancialExposure))
	return nil
}
