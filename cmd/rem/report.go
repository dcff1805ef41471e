package main

import (
	"fmt"

	"rem-go/internal/rem"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate property reports",
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Write a portfolio summary report",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReportSummary")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Reports.PropertySummary(reportCriteria(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", path)
		return nil
	},
}

var reportOwnerCmd = &cobra.Command{
	Use:   "owner [CODE]",
	Short: "Write an owner/property holdings report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReportOwner")
		if err != nil {
			return err
		}
		defer a.Close()

		var ownerCode string
		if len(args) > 0 {
			ownerCode = args[0]
		}
		path, err := a.Reports.OwnerProperties(ownerCode)
		if err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", path)
		return nil
	},
}

var reportMarketCmd = &cobra.Command{
	Use:   "market",
	Short: "Write a market analysis report",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReportMarket")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Reports.MarketReport()
		if err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", path)
		return nil
	},
}

var reportCustomCmd = &cobra.Command{
	Use:   "custom",
	Short: "Write a filtered report (summary, detailed or comparison)",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")

		a, err := newApp("ReportCustom")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Reports.Custom(*reportCriteria(cmd), kind)
		if err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", path)
		return nil
	},
}

var reportCSVCmd = &cobra.Command{
	Use:   "csv [FILENAME]",
	Short: "Export properties to CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReportCSV")
		if err != nil {
			return err
		}
		defer a.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		path, err := a.Reports.ExportCSV(reportCriteria(cmd), name)
		if err != nil {
			return err
		}
		fmt.Printf("Export written: %s\n", path)
		return nil
	},
}

var reportXLSXCmd = &cobra.Command{
	Use:   "xlsx [FILENAME]",
	Short: "Export a multi-sheet XLSX workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReportXLSX")
		if err != nil {
			return err
		}
		defer a.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		path, err := a.Reports.ExportXLSX(name)
		if err != nil {
			return err
		}
		fmt.Printf("Export written: %s\n", path)
		return nil
	},
}

// reportCriteria builds search criteria from the shared filter flags.
// Nil means no filtering at all.
func reportCriteria(cmd *cobra.Command) *rem.PropertySearch {
	var q rem.PropertySearch
	var set bool
	if cmd.Flags().Changed("type") {
		q.TypeCode, _ = cmd.Flags().GetString("type")
		set = true
	}
	if cmd.Flags().Changed("offer") {
		q.OfferTypeCode, _ = cmd.Flags().GetString("offer")
		set = true
	}
	if cmd.Flags().Changed("province") {
		q.ProvinceCode, _ = cmd.Flags().GetString("province")
		set = true
	}
	if cmd.Flags().Changed("min-area") {
		q.MinArea, _ = cmd.Flags().GetFloat64("min-area")
		set = true
	}
	if cmd.Flags().Changed("max-area") {
		q.MaxArea, _ = cmd.Flags().GetFloat64("max-area")
		set = true
	}
	if !set {
		return nil
	}
	return &q
}

func addReportFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "Property type code")
	cmd.Flags().String("offer", "", "Offer type code")
	cmd.Flags().String("province", "", "Province code")
	cmd.Flags().Float64("min-area", 0, "Minimum area")
	cmd.Flags().Float64("max-area", 0, "Maximum area")
}

func init() {
	addReportFilterFlags(reportSummaryCmd)
	addReportFilterFlags(reportCustomCmd)
	addReportFilterFlags(reportCSVCmd)
	reportCustomCmd.Flags().String("kind", "summary", "Report kind: summary, detailed or comparison")

	reportCmd.AddCommand(reportSummaryCmd)
	reportCmd.AddCommand(reportOwnerCmd)
	reportCmd.AddCommand(reportMarketCmd)
	reportCmd.AddCommand(reportCustomCmd)
	reportCmd.AddCommand(reportCSVCmd)
	reportCmd.AddCommand(reportXLSXCmd)
}
