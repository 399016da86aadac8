package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"aceguard-demo/models"
	"aceguard-demo/report"
	"aceguard-demo/store"
	"aceguard-demo/web/service"
)

var (
	demoFast  bool
	demoClaim float64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the scripted demo walkthrough in the terminal",
	Long: `Run the AceGuard demo flow without the API server:

1. Connect the demo repository
2. Run a deep compliance scan
3. Start work on the first new compliance gap
4. File an insurance claim for the most severe finding
5. Print the resulting dashboard`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoFast, "fast", false, "Skip the simulated connection delay")
	demoCmd.Flags().Float64Var(&demoClaim, "fine", 35000000, "Fine amount in EUR for the demo claim")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if demoFast {
		cfg.Demo.AddDelay = 0
	}

	a, err := newApp(cfg, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	return walkthrough(cmd.Context(), cmd.OutOrStdout(), a, demoClaim, time.Now)
}

// walkthrough drives the store through the demo script and prints each step
func walkthrough(ctx context.Context, out io.Writer, a *app, fine float64, now func() time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st := a.store
	name := st.DemoRepositoryName()

	fmt.Fprintf(out, "🔗 Connecting %s (%s)...\n", name, a.cfg.Demo.AddDelay)
	done, started := st.AddRepository()
	if !started {
		return fmt.Errorf("repository %s is already connected", name)
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	fmt.Fprintf(out, "   %d repositories monitored\n", len(st.Repositories()))

	fmt.Fprintf(out, "🔍 Running deep compliance scan on %s...\n", name)
	result := st.RunScan(name)
	fmt.Fprintf(out, "   %d new findings, %d high-risk, %d new gaps\n", result.NewFindings, result.HighRisk, result.NewGaps)

	// scan gaps are appended to the pending lane
	if pending := st.Gaps().Pending; result.NewGaps > 0 && len(pending) >= result.NewGaps {
		gap := pending[len(pending)-result.NewGaps]
		if st.UpdateGapStatus(gap.ID, models.GapStatusInProgress) {
			fmt.Fprintf(out, "📋 %s moved to In Progress (%s)\n", gap.ID, gap.Component)
		}
	}

	eligible := service.EligibleFindings(st.Findings())
	if len(eligible) > 0 && fine > 0 {
		finding := eligible[0]
		claim := models.Claim{
			ClaimID:   service.NextClaimID(st.Claims()),
			Repo:      finding.Repo,
			FineEUR:   fine,
			Status:    models.ClaimStatusUnderReview,
			Submitted: now().UTC().Format(store.DateLayout),
		}
		st.AddClaim(claim)
		fmt.Fprintf(out, "🛡️  Claim %s filed for %s (%s)\n", claim.ClaimID, finding.ID, report.FormatCurrency(claim.FineEUR))
	}

	printDashboard(out, service.GetDashboard(st.Snapshot()))
	return nil
}

func printDashboard(out io.Writer, d service.Dashboard) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "📊 Dashboard")
	fmt.Fprintf(out, "   High-risk open:   %d\n", d.Metrics.HighRiskOpen)
	fmt.Fprintf(out, "   Open gaps:        %d\n", d.Metrics.OpenGaps)
	fmt.Fprintf(out, "   Monitored repos:  %d\n", d.Metrics.MonitoredRepos)
	fmt.Fprintf(out, "   Claims in review: %d\n", d.Metrics.ClaimsInReview)
	fmt.Fprintf(out, "   Fine exposure:    %s\n", d.Metrics.FineExposureLabel)
	if d.Metrics.HasProhibitedIssue {
		fmt.Fprintln(out, "   🚨 Prohibited AI practice detected")
	}
	fmt.Fprintf(out, "   Posture: %d compliant, %d high risk, %d unscanned\n", d.Posture.Compliant, d.Posture.HighRisk, d.Posture.Unscanned)
}
