package main

import (
	"fmt"
	"sort"
	"time"

	"rem-go/internal/rem"

	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Inspect the activity log",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent activity, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		actionType, _ := cmd.Flags().GetString("type")

		a, err := newApp("ActivityList")
		if err != nil {
			return err
		}
		defer a.Close()

		var entries []*rem.Activity
		if actionType != "" {
			byType, err := a.Activity.ByType(actionType)
			if err != nil {
				return err
			}
			if limit > 0 && len(byType) > limit {
				byType = byType[:limit]
			}
			entries = byType
		} else {
			recent, err := a.Activity.Recent(limit)
			if err != nil {
				return err
			}
			entries = recent
		}

		if len(entries) == 0 {
			fmt.Println("No activity recorded.")
			return nil
		}
		for _, e := range entries {
			ts := e.Timestamp
			if t, err := e.Time(); err == nil {
				ts = t.Local().Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%s  %-16s  %s\n", ts, e.ActionType, e.Description)
		}
		return nil
	},
}

var activityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all activity entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ActivityClear")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Activity.Clear()
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d entries.\n", n)
		return nil
	},
}

var activityExportCmd = &cobra.Command{
	Use:   "export PATH",
	Short: "Write the activity log to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ActivityExport")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Activity.Export(args[0])
	},
}

var activityStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize retained activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ActivityStats")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Activity.Statistics()
		if err != nil {
			return err
		}
		fmt.Printf("Total entries: %d\n", stats.Total)
		fmt.Printf("Today:         %d\n", stats.Today)
		fmt.Printf("This week:     %d\n", stats.ThisWeek)
		if len(stats.ByType) > 0 {
			fmt.Println("By type:")
			types := make([]string, 0, len(stats.ByType))
			for t := range stats.ByType {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Printf("  %-16s %d\n", t, stats.ByType[t])
			}
		}
		return nil
	},
}

var activitySinceCmd = &cobra.Command{
	Use:   "since DATE",
	Short: "Show activity since a date (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("parsing date: %w", err)
		}

		a, err := newApp("ActivitySince")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Activity.ByDateRange(from, time.Now())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No activity in range.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-16s  %s\n", e.Timestamp, e.ActionType, e.Description)
		}
		return nil
	},
}

func init() {
	activityListCmd.Flags().Int("limit", 20, "Maximum entries to show (0 for all)")
	activityListCmd.Flags().String("type", "", "Filter by action type")

	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activitySinceCmd)
	activityCmd.AddCommand(activityClearCmd)
	activityCmd.AddCommand(activityExportCmd)
	activityCmd.AddCommand(activityStatsCmd)
}
