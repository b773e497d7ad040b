package cmd

import (
	"encoding/json"
	"fmt"

	"dirsync/feature/dirsync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	noDeletePlan bool
	jsonPlan     bool
)

// planCmd computes the plan of a run without writing anything.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the changes a sync would make",
	Long: `Reads the directory and the shared contacts and reports the creates,
updates and deletes a sync would perform. Nothing is written.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&noDeletePlan, "no-delete", false, "Plan as if deletions were disabled")
	planCmd.Flags().BoolVar(&jsonPlan, "json", false, "Print the full plan as JSON")

	RootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	svc, err := newService(cfg, l)
	if err != nil {
		return err
	}

	report, err := svc.Plan(cmd.Context(), dirsync.Event{KeepRemoved: noDeletePlan})
	if err != nil {
		return fmt.Errorf("failed to plan sync: %w", err)
	}

	printPlanReport(l, report)

	if jsonPlan {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}
	return nil
}

// maxSamples bounds the sample actions logged per phase.
const maxSamples = 5

// printPlanReport logs the plan summary and a few sample actions per phase.
func printPlanReport(l *zap.Logger, report *dirsync.PlanReport) {
	s := report.Summary

	l.Info("Sync plan",
		zap.String("environment", report.Environment),
		zap.Int("total_source_records", report.TotalSourceRecords),
		zap.Int("total_destination_records", report.TotalDestinationRecords),
		zap.Bool("delete_removed", report.DeleteRemoved),
		zap.Int("to_create", s.Create),
		zap.Int("to_update", s.Update),
		zap.Int("to_delete", s.Delete),
	)

	for i, c := range report.Plan.ToCreate {
		if i == maxSamples {
			l.Info("Additional creates not shown", zap.Int("count", s.Create-maxSamples))
			break
		}
		l.Info("Sample action", zap.String("type", "create"), zap.String("key", c.Key()))
	}
	for i, u := range report.Plan.ToUpdate {
		if i == maxSamples {
			l.Info("Additional updates not shown", zap.Int("count", s.Update-maxSamples))
			break
		}
		l.Info("Sample action", zap.String("type", "update"), zap.String("key", u.Fields.Key()), zap.String("id", u.ID))
	}
	for i, d := range report.Plan.ToDelete {
		if i == maxSamples {
			l.Info("Additional deletes not shown", zap.Int("count", s.Delete-maxSamples))
			break
		}
		l.Info("Sample action", zap.String("type", "delete"), zap.String("key", d.Key), zap.String("id", d.ID))
	}
}
