package main

import (
	"fmt"
	"strings"

	"rem-go/internal/rem"

	"github.com/spf13/cobra"
)

var propertyCmd = &cobra.Command{
	Use:   "property",
	Short: "Manage properties",
}

var propertyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a property",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertyCreate")
		if err != nil {
			return err
		}
		defer a.Close()

		p := &rem.Property{}
		p.Code, _ = cmd.Flags().GetString("code")
		p.OwnerCode, _ = cmd.Flags().GetString("owner")
		p.TypeCode, _ = cmd.Flags().GetString("type")
		p.BuildTypeCode, _ = cmd.Flags().GetString("build-type")
		p.OfferTypeCode, _ = cmd.Flags().GetString("offer")
		p.ProvinceCode, _ = cmd.Flags().GetString("province")
		p.RegionCode, _ = cmd.Flags().GetString("region")
		p.Address, _ = cmd.Flags().GetString("address")
		p.Area, _ = cmd.Flags().GetFloat64("area")
		p.Facade, _ = cmd.Flags().GetFloat64("facade")
		p.Depth, _ = cmd.Flags().GetFloat64("depth")
		p.Bedrooms, _ = cmd.Flags().GetInt("bedrooms")
		p.Bathrooms, _ = cmd.Flags().GetInt("bathrooms")
		p.Corner, _ = cmd.Flags().GetBool("corner")
		p.YearBuilt, _ = cmd.Flags().GetInt("year")
		p.Price, _ = cmd.Flags().GetFloat64("price")
		p.Status, _ = cmd.Flags().GetString("status")
		p.Note, _ = cmd.Flags().GetString("note")

		if err := a.Properties.Create(p); err != nil {
			return err
		}
		fmt.Printf("Property code: %s\n", p.Code)
		return nil
	},
}

var propertyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertyList")
		if err != nil {
			return err
		}
		defer a.Close()

		props, err := a.Properties.All()
		if err != nil {
			return err
		}
		printProperties(props)
		return nil
	},
}

var propertyShowCmd = &cobra.Command{
	Use:   "show CODE",
	Short: "Show one property",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertyShow")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Properties.Get(args[0])
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Printf("No property with code %s\n", args[0])
			return nil
		}

		fmt.Printf("Code:      %s\n", p.Code)
		fmt.Printf("Owner:     %s (%s)\n", p.OwnerName, p.OwnerCode)
		fmt.Printf("Address:   %s\n", p.Address)
		fmt.Printf("Area:      %.1f sqm\n", p.Area)
		if p.Bedrooms > 0 || p.Bathrooms > 0 {
			fmt.Printf("Rooms:     %d bed, %d bath\n", p.Bedrooms, p.Bathrooms)
		}
		if p.YearBuilt > 0 {
			fmt.Printf("Built:     %d\n", p.YearBuilt)
		}
		fmt.Printf("Corner:    %t\n", p.Corner)
		if p.Price > 0 {
			fmt.Printf("Price:     %.0f\n", p.Price)
		}
		fmt.Printf("Status:    %s\n", p.Status)
		if len(p.Photos) > 0 {
			fmt.Printf("Photos:    %s\n", strings.Join(p.Photos, ", "))
		}
		if p.Note != "" {
			fmt.Printf("Note:      %s\n", p.Note)
		}
		fmt.Printf("Created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("Updated:   %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var propertyUpdateCmd = &cobra.Command{
	Use:   "update CODE",
	Short: "Update property fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertyUpdate")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Properties.Get(args[0])
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("no property with code %s", args[0])
		}

		if cmd.Flags().Changed("owner") {
			p.OwnerCode, _ = cmd.Flags().GetString("owner")
		}
		if cmd.Flags().Changed("type") {
			p.TypeCode, _ = cmd.Flags().GetString("type")
		}
		if cmd.Flags().Changed("build-type") {
			p.BuildTypeCode, _ = cmd.Flags().GetString("build-type")
		}
		if cmd.Flags().Changed("offer") {
			p.OfferTypeCode, _ = cmd.Flags().GetString("offer")
		}
		if cmd.Flags().Changed("province") {
			p.ProvinceCode, _ = cmd.Flags().GetString("province")
		}
		if cmd.Flags().Changed("region") {
			p.RegionCode, _ = cmd.Flags().GetString("region")
		}
		if cmd.Flags().Changed("address") {
			p.Address, _ = cmd.Flags().GetString("address")
		}
		if cmd.Flags().Changed("area") {
			p.Area, _ = cmd.Flags().GetFloat64("area")
		}
		if cmd.Flags().Changed("facade") {
			p.Facade, _ = cmd.Flags().GetFloat64("facade")
		}
		if cmd.Flags().Changed("depth") {
			p.Depth, _ = cmd.Flags().GetFloat64("depth")
		}
		if cmd.Flags().Changed("bedrooms") {
			p.Bedrooms, _ = cmd.Flags().GetInt("bedrooms")
		}
		if cmd.Flags().Changed("bathrooms") {
			p.Bathrooms, _ = cmd.Flags().GetInt("bathrooms")
		}
		if cmd.Flags().Changed("corner") {
			p.Corner, _ = cmd.Flags().GetBool("corner")
		}
		if cmd.Flags().Changed("year") {
			p.YearBuilt, _ = cmd.Flags().GetInt("year")
		}
		if cmd.Flags().Changed("price") {
			p.Price, _ = cmd.Flags().GetFloat64("price")
		}
		if cmd.Flags().Changed("note") {
			p.Note, _ = cmd.Flags().GetString("note")
		}

		return a.Properties.Update(p)
	},
}

var propertyDeleteCmd = &cobra.Command{
	Use:   "delete CODE",
	Short: "Delete a property and its photo files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertyDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Properties.Delete(args[0])
	},
}

var propertyStatusCmd = &cobra.Command{
	Use:   "status CODE STATUS",
	Short: "Change a property's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertySetStatus")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Properties.SetStatus(args[0], args[1])
	},
}

var propertySearchCmd = &cobra.Command{
	Use:   "search [TERM]",
	Short: "Search properties",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertySearch")
		if err != nil {
			return err
		}
		defer a.Close()

		var q rem.PropertySearch
		if len(args) > 0 {
			q.Term = args[0]
		}
		q.TypeCode, _ = cmd.Flags().GetString("type")
		q.OfferTypeCode, _ = cmd.Flags().GetString("offer")
		q.ProvinceCode, _ = cmd.Flags().GetString("province")
		q.RegionCode, _ = cmd.Flags().GetString("region")
		q.OwnerName, _ = cmd.Flags().GetString("owner-name")
		q.MinArea, _ = cmd.Flags().GetFloat64("min-area")
		q.MaxArea, _ = cmd.Flags().GetFloat64("max-area")
		q.MinBedrooms, _ = cmd.Flags().GetInt("min-bedrooms")
		q.MinBathrooms, _ = cmd.Flags().GetInt("min-bathrooms")
		q.MinYear, _ = cmd.Flags().GetInt("min-year")
		q.MaxYear, _ = cmd.Flags().GetInt("max-year")
		if cmd.Flags().Changed("corner") {
			corner, _ := cmd.Flags().GetBool("corner")
			q.Corner = &corner
		}

		props, err := a.Properties.Search(q)
		if err != nil {
			return err
		}
		printProperties(props)
		return nil
	},
}

var propertyPhotoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage property photos",
}

var propertyPhotoAddCmd = &cobra.Command{
	Use:   "add CODE FILE",
	Short: "Attach a photo to a property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertyAddPhoto")
		if err != nil {
			return err
		}
		defer a.Close()

		filename, err := a.Properties.AddPhoto(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Stored as: %s\n", filename)
		return nil
	},
}

var propertyPhotoRemoveCmd = &cobra.Command{
	Use:   "remove CODE FILENAME",
	Short: "Detach a photo from a property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("PropertyRemovePhoto")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Properties.RemovePhoto(args[0], args[1])
	},
}

// ref command
var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Manage reference data",
}

var refListCmd = &cobra.Command{
	Use:   "list CATEGORY",
	Short: "List a reference category (01 provinces, 02 regions, 03 property types, 04 build types, 06 offer types)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReferenceList")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Properties.References(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No entries.")
			return nil
		}
		for _, e := range entries {
			if e.ParentCode != "" {
				fmt.Printf("%s  %-30s  (parent %s)\n", e.Code, e.Name, e.ParentCode)
			} else {
				fmt.Printf("%s  %s\n", e.Code, e.Name)
			}
		}
		return nil
	},
}

var refAddCmd = &cobra.Command{
	Use:   "add CATEGORY CODE NAME",
	Short: "Add a reference entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")

		a, err := newApp("ReferenceAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Properties.AddReference(&rem.ReferenceEntry{
			Category:   args[0],
			Code:       args[1],
			Name:       args[2],
			ParentCode: parent,
		})
	},
}

func printProperties(props []*rem.Property) {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return
	}
	for _, p := range props {
		fmt.Printf("%s  %-30s  %-20s  %8.1f sqm  %s\n", p.Code, p.Address, p.OwnerName, p.Area, p.Status)
	}
}

func init() {
	propertyAddCmd.Flags().String("code", "", "Property code (generated when omitted)")
	propertyAddCmd.Flags().String("owner", "", "Owner code (required)")
	propertyAddCmd.Flags().String("type", "", "Property type code (required)")
	propertyAddCmd.Flags().String("build-type", "", "Build type code")
	propertyAddCmd.Flags().String("offer", "", "Offer type code")
	propertyAddCmd.Flags().String("province", "", "Province code")
	propertyAddCmd.Flags().String("region", "", "Region code")
	propertyAddCmd.Flags().String("address", "", "Location/address (required)")
	propertyAddCmd.Flags().Float64("area", 0, "Area in square meters (required)")
	propertyAddCmd.Flags().Float64("facade", 0, "Facade width in meters")
	propertyAddCmd.Flags().Float64("depth", 0, "Depth in meters")
	propertyAddCmd.Flags().Int("bedrooms", 0, "Bedroom count")
	propertyAddCmd.Flags().Int("bathrooms", 0, "Bathroom count")
	propertyAddCmd.Flags().Bool("corner", false, "Corner lot")
	propertyAddCmd.Flags().Int("year", 0, "Year built")
	propertyAddCmd.Flags().Float64("price", 0, "Asking price")
	propertyAddCmd.Flags().String("status", "", "Status (default Available)")
	propertyAddCmd.Flags().String("note", "", "Free-text note")

	propertyUpdateCmd.Flags().String("owner", "", "Owner code")
	propertyUpdateCmd.Flags().String("type", "", "Property type code")
	propertyUpdateCmd.Flags().String("build-type", "", "Build type code")
	propertyUpdateCmd.Flags().String("offer", "", "Offer type code")
	propertyUpdateCmd.Flags().String("province", "", "Province code")
	propertyUpdateCmd.Flags().String("region", "", "Region code")
	propertyUpdateCmd.Flags().String("address", "", "Location/address")
	propertyUpdateCmd.Flags().Float64("area", 0, "Area in square meters")
	propertyUpdateCmd.Flags().Float64("facade", 0, "Facade width in meters")
	propertyUpdateCmd.Flags().Float64("depth", 0, "Depth in meters")
	propertyUpdateCmd.Flags().Int("bedrooms", 0, "Bedroom count")
	propertyUpdateCmd.Flags().Int("bathrooms", 0, "Bathroom count")
	propertyUpdateCmd.Flags().Bool("corner", false, "Corner lot")
	propertyUpdateCmd.Flags().Int("year", 0, "Year built")
	propertyUpdateCmd.Flags().Float64("price", 0, "Asking price")
	propertyUpdateCmd.Flags().String("note", "", "Free-text note")

	propertySearchCmd.Flags().String("type", "", "Property type code")
	propertySearchCmd.Flags().String("offer", "", "Offer type code")
	propertySearchCmd.Flags().String("province", "", "Province code")
	propertySearchCmd.Flags().String("region", "", "Region code")
	propertySearchCmd.Flags().String("owner-name", "", "Owner name contains")
	propertySearchCmd.Flags().Float64("min-area", 0, "Minimum area")
	propertySearchCmd.Flags().Float64("max-area", 0, "Maximum area")
	propertySearchCmd.Flags().Int("min-bedrooms", 0, "Minimum bedrooms")
	propertySearchCmd.Flags().Int("min-bathrooms", 0, "Minimum bathrooms")
	propertySearchCmd.Flags().Int("min-year", 0, "Earliest build year")
	propertySearchCmd.Flags().Int("max-year", 0, "Latest build year")
	propertySearchCmd.Flags().Bool("corner", false, "Corner lots only (or --corner=false)")

	refAddCmd.Flags().String("parent", "", "Parent code (regions reference a province)")

	propertyPhotoCmd.AddCommand(propertyPhotoAddCmd)
	propertyPhotoCmd.AddCommand(propertyPhotoRemoveCmd)

	propertyCmd.AddCommand(propertyAddCmd)
	propertyCmd.AddCommand(propertyListCmd)
	propertyCmd.AddCommand(propertyShowCmd)
	propertyCmd.AddCommand(propertyUpdateCmd)
	propertyCmd.AddCommand(propertyDeleteCmd)
	propertyCmd.AddCommand(propertyStatusCmd)
	propertyCmd.AddCommand(propertySearchCmd)
	propertyCmd.AddCommand(propertyPhotoCmd)

	refCmd.AddCommand(refListCmd)
	refCmd.AddCommand(refAddCmd)
}
