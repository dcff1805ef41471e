package rem

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report types accepted by Custom.
const (
	ReportSummary    = "summary"
	ReportDetailed   = "detailed"
	ReportComparison = "comparison"
)

const reportTimeLayout = "20060102_150405"

// TypeDistribution aggregates one property type's share of the market.
type TypeDistribution struct {
	Count      int
	Percentage float64
	TotalArea  float64
	AvgArea    float64
}

// RegionDistribution aggregates one region's share of the market.
type RegionDistribution struct {
	Count      int
	Percentage float64
}

// MarketAnalysis is the computed input of the market analysis report.
type MarketAnalysis struct {
	TotalProperties    int
	TotalArea          float64
	AvgArea            float64
	TypeDistribution   map[string]*TypeDistribution
	RegionDistribution map[string]*RegionDistribution
	RecentProperties   int
	CornerProperties   int
	AvgBedrooms        float64
	AvgBathrooms       float64
	AvgPrice           float64
}

// ReportController generates text, CSV, and spreadsheet reports under the
// reports directory. Text formats follow the house report layout; numbers
// are rendered with English locale grouping.
type ReportController struct {
	properties  *PropertyModel
	owners      *OwnerModel
	activity    *ActivityModel
	spreadsheet SpreadsheetWriter
	fs          Filesystem
	clock       Clock
	logger      Logger
	view        View
	dir         string
	printer     *message.Printer
}

// NewReportController creates a ReportController writing into dir.
func NewReportController(properties *PropertyModel, owners *OwnerModel, activity *ActivityModel, spreadsheet SpreadsheetWriter, fs Filesystem, clock Clock, logger Logger, view View, dir string) *ReportController {
	return &ReportController{
		properties:  properties,
		owners:      owners,
		activity:    activity,
		spreadsheet: spreadsheet,
		fs:          fs,
		clock:       clock,
		logger:      logger,
		view:        view,
		dir:         dir,
		printer:     message.NewPrinter(language.English),
	}
}

// PropertySummary writes the property summary report, optionally filtered,
// and returns the report path.
func (c *ReportController) PropertySummary(criteria *PropertySearch) (string, error) {
	var props []*Property
	var err error
	if criteria != nil && !criteria.IsZero() {
		props, err = c.properties.Search(*criteria)
	} else {
		props, err = c.properties.All()
	}
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
		return "", err
	}
	if len(props) == 0 {
		err := fmt.Errorf("no properties found for report")
		c.view.ShowError("No properties found for report")
		return "", err
	}

	path, err := c.saveReport("property_summary_report", c.propertySummaryContent(props))
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
		return "", err
	}

	c.reportDone("Property summary report generated", path)
	return path, nil
}

func (c *ReportController) propertySummaryContent(props []*Property) string {
	totalArea := 0.0
	typeCounts := make(map[string]int)
	offerCounts := make(map[string]int)
	for _, p := range props {
		totalArea += p.Area
		typeCounts[c.typeName(p)]++
		offerCounts[c.offerName(p)]++
	}
	avgArea := totalArea / float64(len(props))

	var b strings.Builder
	b.WriteString("\nPROPERTY SUMMARY REPORT\n")
	b.WriteString("======================\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", c.clock.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("OVERVIEW\n--------\n")
	fmt.Fprintf(&b, "Total Properties: %d\n", len(props))
	c.printer.Fprintf(&b, "Total Area: %.2f sqm\n", totalArea)
	fmt.Fprintf(&b, "Average Area: %.2f sqm\n\n", avgArea)

	b.WriteString("PROPERTY TYPES\n--------------\n")
	for _, name := range sortedKeys(typeCounts) {
		count := typeCounts[name]
		fmt.Fprintf(&b, "%s: %d (%.1f%%)\n", name, count, percent(count, len(props)))
	}

	b.WriteString("\nOFFER TYPES\n-----------\n")
	for _, name := range sortedKeys(offerCounts) {
		count := offerCounts[name]
		fmt.Fprintf(&b, "%s: %d (%.1f%%)\n", name, count, percent(count, len(props)))
	}

	b.WriteString("\nPROPERTY DETAILS\n" + strings.Repeat("=", 50) + "\n")
	for i, p := range props {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.Code)
		fmt.Fprintf(&b, "   Type: %s\n", na(c.typeName(p)))
		fmt.Fprintf(&b, "   Area: %g sqm\n", p.Area)
		fmt.Fprintf(&b, "   Location: %s\n", na(p.Address))
		fmt.Fprintf(&b, "   Owner: %s\n", na(p.OwnerName))
	}
	return b.String()
}

// OwnerProperties writes the owner/properties report. With a blank code it
// covers every owner; otherwise just the one.
func (c *ReportController) OwnerProperties(ownerCode string) (string, error) {
	var owners []*Owner
	if ownerCode != "" {
		owner, err := c.owners.Get(ownerCode)
		if err != nil {
			c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
			return "", err
		}
		if owner == nil {
			err := fmt.Errorf("owner %s: %w", ownerCode, ErrNotFound)
			c.view.ShowError(fmt.Sprintf("Owner not found: %s", ownerCode))
			return "", err
		}
		owners = []*Owner{owner}
	} else {
		var err error
		owners, err = c.owners.All()
		if err != nil {
			c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
			return "", err
		}
	}
	if len(owners) == 0 {
		err := fmt.Errorf("no owners found for report")
		c.view.ShowError("No owners found for report")
		return "", err
	}

	byOwner := make(map[string][]*Property, len(owners))
	total := 0
	for _, o := range owners {
		props, err := c.properties.ByOwner(o.Code)
		if err != nil {
			c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
			return "", err
		}
		byOwner[o.Code] = props
		total += len(props)
	}

	kind := "owner_properties_report"
	if ownerCode != "" {
		kind += "_" + ownerCode
	}
	path, err := c.saveReport(kind, c.ownerPropertiesContent(owners, byOwner, total))
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
		return "", err
	}

	c.reportDone("Owner properties report generated", path)
	return path, nil
}

func (c *ReportController) ownerPropertiesContent(owners []*Owner, byOwner map[string][]*Property, totalProperties int) string {
	var b strings.Builder
	b.WriteString("\nOWNER PROPERTIES REPORT\n")
	b.WriteString("======================\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", c.clock.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("OVERVIEW\n--------\n")
	fmt.Fprintf(&b, "Total Owners: %d\n", len(owners))
	fmt.Fprintf(&b, "Total Properties: %d\n", totalProperties)
	fmt.Fprintf(&b, "Average Properties per Owner: %.1f\n\n", float64(totalProperties)/float64(len(owners)))
	b.WriteString("OWNER DETAILS\n=============\n")

	for _, o := range owners {
		props := byOwner[o.Code]
		fmt.Fprintf(&b, "\nOwner: %s\n", na(o.Name))
		fmt.Fprintf(&b, "Code: %s\n", na(o.Code))
		fmt.Fprintf(&b, "Phone: %s\n", na(o.Phone))
		fmt.Fprintf(&b, "Properties: %d\n", len(props))
		if len(props) > 0 {
			b.WriteString("Property List:\n")
			for _, p := range props {
				fmt.Fprintf(&b, "  - %s (%s) %g sqm\n", p.Code, na(c.typeName(p)), p.Area)
			}
		} else {
			b.WriteString("No properties found.\n")
		}
		b.WriteString(strings.Repeat("-", 50) + "\n")
	}
	return b.String()
}

// Analyze computes the market analysis over all properties.
func (c *ReportController) Analyze() (*MarketAnalysis, error) {
	props, err := c.properties.All()
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("no properties found for analysis")
	}

	a := &MarketAnalysis{
		TotalProperties:    len(props),
		TypeDistribution:   make(map[string]*TypeDistribution),
		RegionDistribution: make(map[string]*RegionDistribution),
	}
	currentYear := c.clock.Now().Year()
	bedrooms, bathrooms := 0, 0
	priceSum, priced := 0.0, 0

	for _, p := range props {
		a.TotalArea += p.Area

		typeName := c.typeName(p)
		if typeName == "" {
			typeName = "Unknown"
		}
		td := a.TypeDistribution[typeName]
		if td == nil {
			td = &TypeDistribution{}
			a.TypeDistribution[typeName] = td
		}
		td.Count++
		td.TotalArea += p.Area

		regionName := c.regionName(p)
		if regionName == "" {
			regionName = "Unknown"
		}
		rd := a.RegionDistribution[regionName]
		if rd == nil {
			rd = &RegionDistribution{}
			a.RegionDistribution[regionName] = rd
		}
		rd.Count++

		if p.YearBuilt > 0 && p.YearBuilt >= currentYear-5 {
			a.RecentProperties++
		}
		if p.Corner {
			a.CornerProperties++
		}
		bedrooms += p.Bedrooms
		bathrooms += p.Bathrooms
		if p.Price > 0 {
			priceSum += p.Price
			priced++
		}
	}

	a.AvgArea = a.TotalArea / float64(len(props))
	a.AvgBedrooms = float64(bedrooms) / float64(len(props))
	a.AvgBathrooms = float64(bathrooms) / float64(len(props))
	if priced > 0 {
		a.AvgPrice = priceSum / float64(priced)
	}
	for _, td := range a.TypeDistribution {
		td.Percentage = percent(td.Count, len(props))
		td.AvgArea = td.TotalArea / float64(td.Count)
	}
	for _, rd := range a.RegionDistribution {
		rd.Percentage = percent(rd.Count, len(props))
	}
	return a, nil
}

// MarketReport writes the market analysis report and returns its path.
func (c *ReportController) MarketReport() (string, error) {
	analysis, err := c.Analyze()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
		return "", err
	}

	path, err := c.saveReport("market_analysis_report", c.marketContent(analysis))
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
		return "", err
	}

	c.reportDone("Market analysis report generated", path)
	return path, nil
}

func (c *ReportController) marketContent(a *MarketAnalysis) string {
	var b strings.Builder
	b.WriteString("\nMARKET ANALYSIS REPORT\n")
	b.WriteString("=====================\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", c.clock.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("MARKET OVERVIEW\n---------------\n")
	fmt.Fprintf(&b, "Total Properties: %d\n", a.TotalProperties)
	c.printer.Fprintf(&b, "Total Market Area: %.2f sqm\n", a.TotalArea)
	fmt.Fprintf(&b, "Average Property Size: %.2f sqm\n\n", a.AvgArea)

	b.WriteString("PROPERTY TYPE DISTRIBUTION\n-------------------------\n")
	names := make([]string, 0, len(a.TypeDistribution))
	for name := range a.TypeDistribution {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		td := a.TypeDistribution[name]
		fmt.Fprintf(&b, "%s:\n", name)
		fmt.Fprintf(&b, "  Count: %d\n", td.Count)
		fmt.Fprintf(&b, "  Percentage: %.1f%%\n", td.Percentage)
		c.printer.Fprintf(&b, "  Total Area: %.2f sqm\n", td.TotalArea)
		fmt.Fprintf(&b, "  Avg Area: %.2f sqm\n\n", td.AvgArea)
	}

	b.WriteString("REGIONAL DISTRIBUTION\n" + strings.Repeat("-", 20) + "\n")
	regions := make([]string, 0, len(a.RegionDistribution))
	for name := range a.RegionDistribution {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	for _, name := range regions {
		rd := a.RegionDistribution[name]
		fmt.Fprintf(&b, "%s: %d properties (%.1f%%)\n", name, rd.Count, rd.Percentage)
	}

	b.WriteString("\nMARKET TRENDS\n" + strings.Repeat("-", 13) + "\n")
	fmt.Fprintf(&b, "Properties Built in Last 5 Years: %d\n", a.RecentProperties)
	fmt.Fprintf(&b, "Corner Properties: %d\n", a.CornerProperties)
	fmt.Fprintf(&b, "Average Bedrooms: %.1f\n", a.AvgBedrooms)
	fmt.Fprintf(&b, "Average Bathrooms: %.1f\n", a.AvgBathrooms)
	if a.AvgPrice > 0 {
		c.printer.Fprintf(&b, "Average Price: %.2f\n", a.AvgPrice)
	}
	return b.String()
}

// Custom writes a summary, detailed, or comparison report over the
// properties matching criteria and returns the report path.
func (c *ReportController) Custom(criteria PropertySearch, reportType string) (string, error) {
	props, err := c.properties.Search(criteria)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
		return "", err
	}
	if len(props) == 0 {
		err := fmt.Errorf("no properties match the specified criteria")
		c.view.ShowError("No properties match the specified criteria")
		return "", err
	}

	var content string
	switch reportType {
	case ReportSummary:
		content = c.summaryContent(props, criteria)
	case ReportDetailed:
		content = c.detailedContent(props, criteria)
	case ReportComparison:
		content = c.comparisonContent(props, criteria)
	default:
		err := fmt.Errorf("unknown report type: %s", reportType)
		c.view.ShowError(err.Error())
		return "", err
	}

	path, err := c.saveReport("custom_"+reportType+"_report", content)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to generate report: %v", err))
		return "", err
	}

	c.reportDone(fmt.Sprintf("Custom %s report generated", reportType), path)
	return path, nil
}

func (c *ReportController) summaryContent(props []*Property, criteria PropertySearch) string {
	totalArea := 0.0
	for _, p := range props {
		totalArea += p.Area
	}

	var b strings.Builder
	b.WriteString("\nSUMMARY REPORT\n==============\n")
	fmt.Fprintf(&b, "Generated: %s\n", c.clock.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Filter Criteria: %s\n\n", criteria)
	fmt.Fprintf(&b, "Total Properties Found: %d\n", len(props))
	c.printer.Fprintf(&b, "Total Area: %.2f sqm\n", totalArea)
	fmt.Fprintf(&b, "Average Area: %.2f sqm\n\n", totalArea/float64(len(props)))
	b.WriteString("Property Codes:\n")
	for _, p := range props {
		fmt.Fprintf(&b, "- %s\n", p.Code)
	}
	return b.String()
}

func (c *ReportController) detailedContent(props []*Property, criteria PropertySearch) string {
	var b strings.Builder
	b.WriteString("\nDETAILED PROPERTY REPORT\n=======================\n")
	fmt.Fprintf(&b, "Generated: %s\n", c.clock.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Filter Criteria: %s\n\n", criteria)
	fmt.Fprintf(&b, "PROPERTIES FOUND: %d\n", len(props))

	for _, p := range props {
		b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
		fmt.Fprintf(&b, "Property Code: %s\n", na(p.Code))
		fmt.Fprintf(&b, "Company Code: %s\n", na(p.CompanyPrefix()))
		fmt.Fprintf(&b, "Type: %s\n", na(c.typeName(p)))
		fmt.Fprintf(&b, "Build Type: %s\n", na(c.buildName(p)))
		fmt.Fprintf(&b, "Year: %s\n", naInt(p.YearBuilt))
		fmt.Fprintf(&b, "Area: %g sqm\n", p.Area)
		fmt.Fprintf(&b, "Facade: %g m\n", p.Facade)
		fmt.Fprintf(&b, "Depth: %g m\n", p.Depth)
		fmt.Fprintf(&b, "Bedrooms: %d\n", p.Bedrooms)
		fmt.Fprintf(&b, "Bathrooms: %d\n", p.Bathrooms)
		fmt.Fprintf(&b, "Corner: %s\n", yesNo(p.Corner))
		fmt.Fprintf(&b, "Offer Type: %s\n", na(c.offerName(p)))
		fmt.Fprintf(&b, "Province: %s\n", na(c.provinceName(p)))
		fmt.Fprintf(&b, "Region: %s\n", na(c.regionName(p)))
		fmt.Fprintf(&b, "Address: %s\n", na(p.Address))
		fmt.Fprintf(&b, "Owner: %s\n", na(p.OwnerName))
		fmt.Fprintf(&b, "Phone: %s\n", na(p.OwnerPhone))
		if p.Price > 0 {
			c.printer.Fprintf(&b, "Price: %.2f\n", p.Price)
		} else {
			b.WriteString("Price: N/A\n")
		}
		fmt.Fprintf(&b, "Status: %s\n", na(p.Status))
		fmt.Fprintf(&b, "Description: %s\n", na(p.Note))
	}
	return b.String()
}

func (c *ReportController) comparisonContent(props []*Property, criteria PropertySearch) string {
	if len(props) < 2 {
		return "Comparison report requires at least 2 properties."
	}

	var b strings.Builder
	b.WriteString("\nPROPERTY COMPARISON REPORT\n=========================\n")
	fmt.Fprintf(&b, "Generated: %s\n", c.clock.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Filter Criteria: %s\n\n", criteria)
	fmt.Fprintf(&b, "Comparing %d Properties:\n\n", len(props))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Property Code\tType\tArea\tBed\tBath\tYear\tOwner")
	for _, p := range props {
		fmt.Fprintf(w, "%s\t%s\t%g\t%d\t%d\t%s\t%s\n",
			p.Code, na(c.typeName(p)), p.Area, p.Bedrooms, p.Bathrooms,
			naInt(p.YearBuilt), na(p.OwnerName))
	}
	w.Flush()
	return b.String()
}

// csvHeaders is the fixed column list of CSV and spreadsheet exports.
var csvHeaders = []string{
	"Property Code", "Company Code", "Property Type", "Build Type",
	"Year Built", "Area (sqm)", "Facade (m)", "Depth (m)",
	"Bedrooms", "Bathrooms", "Corner Property", "Offer Type",
	"Province", "Region", "Address", "Owner Name", "Owner Phone",
	"Price", "Status", "Description",
}

// ExportCSV writes the properties matching criteria (all when nil) to a
// CSV file and returns its path. A blank filename gets a timestamped one.
func (c *ReportController) ExportCSV(criteria *PropertySearch, filename string) (string, error) {
	var props []*Property
	var err error
	if criteria != nil && !criteria.IsZero() {
		props, err = c.properties.Search(*criteria)
	} else {
		props, err = c.properties.All()
	}
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", err
	}
	if len(props) == 0 {
		err := fmt.Errorf("no data to export")
		c.view.ShowError("No data to export")
		return "", err
	}

	if filename == "" {
		filename = fmt.Sprintf("properties_export_%s.csv", c.clock.Now().Format(reportTimeLayout))
	}
	path := filepath.Join(c.dir, filename)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for _, p := range props {
		if err := w.Write(c.csvRow(p)); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("writing csv: %w", err)
	}

	if err := c.fs.EnsureDir(c.dir); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", err
	}
	if err := c.fs.WriteFile(path, buf.Bytes()); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", err
	}

	c.reportDone("Data exported to CSV", path)
	return path, nil
}

func (c *ReportController) csvRow(p *Property) []string {
	return []string{
		p.Code,
		p.CompanyPrefix(),
		c.typeName(p),
		c.buildName(p),
		intField(p.YearBuilt),
		floatField(p.Area),
		floatField(p.Facade),
		floatField(p.Depth),
		strconv.Itoa(p.Bedrooms),
		strconv.Itoa(p.Bathrooms),
		yesNo(p.Corner),
		c.offerName(p),
		c.provinceName(p),
		c.regionName(p),
		p.Address,
		p.OwnerName,
		p.OwnerPhone,
		floatField(p.Price),
		p.Status,
		p.Note,
	}
}

// ExportXLSX writes a spreadsheet workbook with property, owner, and
// statistics sheets and returns its path.
func (c *ReportController) ExportXLSX(filename string) (string, error) {
	props, err := c.properties.All()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", err
	}
	owners, err := c.owners.All()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", err
	}
	stats, err := c.properties.Statistics()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", err
	}

	propRows := make([][]any, 0, len(props))
	countByOwner := make(map[string]int, len(owners))
	for _, p := range props {
		countByOwner[p.OwnerCode]++
		row := make([]any, 0, len(csvHeaders))
		for _, cell := range c.csvRow(p) {
			row = append(row, cell)
		}
		propRows = append(propRows, row)
	}

	ownerRows := make([][]any, 0, len(owners))
	for _, o := range owners {
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Format("2006-01-02")
		}
		ownerRows = append(ownerRows, []any{o.Code, o.Name, o.Phone, o.Note, created, countByOwner[o.Code]})
	}

	statRows := [][]any{
		{"Total Owners", stats.TotalOwners},
		{"Total Properties", stats.TotalProperties},
		{"Total Area (sqm)", stats.TotalArea},
		{"Average Area (sqm)", stats.AverageArea},
	}
	for _, code := range sortedKeys(stats.ByType) {
		name := c.properties.ReferenceName(CategoryPropertyType, code)
		statRows = append(statRows, []any{"Properties: " + name, stats.ByType[code]})
	}

	if filename == "" {
		filename = fmt.Sprintf("realestate_export_%s.xlsx", c.clock.Now().Format(reportTimeLayout))
	}
	if err := c.fs.EnsureDir(c.dir); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", err
	}
	path := filepath.Join(c.dir, filename)

	sheets := []Sheet{
		{Name: "Properties", Header: csvHeaders, Rows: propRows},
		{Name: "Owners", Header: []string{"Code", "Name", "Phone", "Note", "Created", "Properties"}, Rows: ownerRows},
		{Name: "Statistics", Header: []string{"Metric", "Value"}, Rows: statRows},
	}
	if err := c.spreadsheet.Write(path, sheets); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export: %v", err))
		return "", fmt.Errorf("writing workbook: %w", err)
	}

	c.reportDone("Data exported to spreadsheet", path)
	return path, nil
}

// saveReport writes content under the reports directory with a
// timestamped name and returns the path.
func (c *ReportController) saveReport(kind, content string) (string, error) {
	if err := c.fs.EnsureDir(c.dir); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.txt", kind, c.clock.Now().Format(reportTimeLayout))
	path := filepath.Join(c.dir, filename)
	if err := c.fs.WriteFile(path, []byte(content)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	c.logger.Info("report saved", "path", path)
	return path, nil
}

func (c *ReportController) reportDone(message, path string) {
	if err := c.activity.Record(ActionReportCreated, fmt.Sprintf("%s: %s", message, filepath.Base(path)), map[string]any{
		"path": path,
	}); err != nil {
		c.logger.Warn("recording activity failed", "action", ActionReportCreated, "error", err)
	}
	c.view.ShowSuccess(fmt.Sprintf("%s: %s", message, filepath.Base(path)))
}

func (c *ReportController) typeName(p *Property) string {
	return c.properties.ReferenceName(CategoryPropertyType, p.TypeCode)
}

func (c *ReportController) buildName(p *Property) string {
	return c.properties.ReferenceName(CategoryBuildType, p.BuildTypeCode)
}

func (c *ReportController) offerName(p *Property) string {
	return c.properties.ReferenceName(CategoryOfferType, p.OfferTypeCode)
}

func (c *ReportController) provinceName(p *Property) string {
	return c.properties.ReferenceName(CategoryProvince, p.ProvinceCode)
}

func (c *ReportController) regionName(p *Property) string {
	return c.properties.ReferenceName(CategoryRegion, p.RegionCode)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func na(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func naInt(n int) string {
	if n == 0 {
		return "N/A"
	}
	return strconv.Itoa(n)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func intField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func floatField(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
