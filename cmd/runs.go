package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect research run history",
	Long:  "Commands for listing, viewing, and summarizing recorded research runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List research runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		status, _ := cmd.Flags().GetString("status")
		typ, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(status),
			Type:   model.SubjectType(typ),
			Limit:  limit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs stats --

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate run statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		since, _ := cmd.Flags().GetDuration("since")
		filter := store.RunFilter{Limit: 10000}
		if since > 0 {
			filter.CreatedAfter = time.Now().Add(-since)
		}

		runs, err := st.ListRuns(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "runs stats")
		}

		formatRunStats(os.Stdout, computeRunStats(runs))
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("status", "", "filter by run status (running, complete, failed)")
	runsListCmd.Flags().String("type", "", "filter by subject type (product, event, job, generic)")
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")

	runsStatsCmd.Flags().Duration("since", 24*time.Hour, "time window for stats (e.g. 24h, 72h, 168h)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}

// openStore opens and migrates the configured run store.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("runs"); err != nil {
		return nil, err
	}
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// runSummary holds aggregate statistics computed from a set of runs.
type runSummary struct {
	Total     int
	Complete  int
	Failed    int
	Running   int
	ByQuality map[model.QualityTier]int
	Queries   int
	TotalCost float64
	AvgDurMs  float64
}

// computeRunStats computes aggregate statistics from a list of runs.
// Durations are averaged over finished runs only.
func computeRunStats(runs []model.Run) runSummary {
	s := runSummary{Total: len(runs), ByQuality: make(map[model.QualityTier]int)}

	var totalDur int64
	var finished int

	for _, r := range runs {
		switch r.Status {
		case model.RunStatusComplete:
			s.Complete++
			if r.Stats.Quality != "" {
				s.ByQuality[r.Stats.Quality]++
			}
		case model.RunStatusFailed:
			s.Failed++
		default:
			s.Running++
			continue
		}
		totalDur += r.Stats.DurationMs
		finished++
		s.Queries += r.Stats.Queries + r.Stats.FallbackQueries
		s.TotalCost += r.Stats.Cost
	}

	if finished > 0 {
		s.AvgDurMs = float64(totalDur) / float64(finished)
	}
	return s
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSUBJECT\tTYPE\tSTATUS\tQUALITY\tCOST\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-------\t----\t------\t-------\t----\t-------")

	for _, r := range runs {
		name := r.Subject.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		quality := string(r.Stats.Quality)
		if quality == "" {
			quality = "-"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t$%.3f\t%s\n",
			truncateID(r.ID),
			name,
			r.Subject.Type,
			r.Status,
			quality,
			r.Stats.Cost,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// formatRunStats writes aggregate stats to w.
func formatRunStats(out io.Writer, s runSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total runs:\t%d\n", s.Total)
	_, _ = fmt.Fprintf(w, "Complete:\t%d\n", s.Complete)

	tiers := make([]string, 0, len(s.ByQuality))
	for tier := range s.ByQuality {
		tiers = append(tiers, string(tier))
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		_, _ = fmt.Fprintf(w, "  %s:\t%d\n", tier, s.ByQuality[model.QualityTier(tier)])
	}

	_, _ = fmt.Fprintf(w, "Failed:\t%d\n", s.Failed)
	_, _ = fmt.Fprintf(w, "Running:\t%d\n", s.Running)
	_, _ = fmt.Fprintf(w, "Search queries:\t%d\n", s.Queries)
	_, _ = fmt.Fprintf(w, "Total cost:\t$%.3f\n", s.TotalCost)
	if s.AvgDurMs > 0 {
		_, _ = fmt.Fprintf(w, "Avg duration:\t%.1fs\n", s.AvgDurMs/1000)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
