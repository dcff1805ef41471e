package main

import (
	"fmt"

	"rem-go/internal/rem"

	"github.com/spf13/cobra"
)

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Manage owners",
}

var ownerAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create an owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")
		note, _ := cmd.Flags().GetString("note")
		code, _ := cmd.Flags().GetString("code")

		a, err := newApp("OwnerCreate")
		if err != nil {
			return err
		}
		defer a.Close()

		o := &rem.Owner{Code: code, Name: args[0], Phone: phone, Note: note}
		if err := a.Owners.Create(o); err != nil {
			return err
		}
		fmt.Printf("Owner code: %s\n", o.Code)
		return nil
	},
}

var ownerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all owners",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OwnerList")
		if err != nil {
			return err
		}
		defer a.Close()

		owners, err := a.Owners.All()
		if err != nil {
			return err
		}
		printOwners(owners)
		return nil
	},
}

var ownerShowCmd = &cobra.Command{
	Use:   "show CODE",
	Short: "Show one owner and their properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OwnerShow")
		if err != nil {
			return err
		}
		defer a.Close()

		o, err := a.Owners.Get(args[0])
		if err != nil {
			return err
		}
		if o == nil {
			fmt.Printf("No owner with code %s\n", args[0])
			return nil
		}

		fmt.Printf("Code:    %s\n", o.Code)
		fmt.Printf("Name:    %s\n", o.Name)
		fmt.Printf("Phone:   %s\n", o.Phone)
		fmt.Printf("Note:    %s\n", o.Note)
		fmt.Printf("Created: %s\n", o.CreatedAt.Format("2006-01-02 15:04"))

		props, err := a.Owners.Properties(o.Code)
		if err != nil {
			return err
		}
		if len(props) > 0 {
			fmt.Printf("\nProperties (%d):\n", len(props))
			printProperties(props)
		}
		return nil
	},
}

var ownerUpdateCmd = &cobra.Command{
	Use:   "update CODE",
	Short: "Update an owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OwnerUpdate")
		if err != nil {
			return err
		}
		defer a.Close()

		o, err := a.Owners.Get(args[0])
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("no owner with code %s", args[0])
		}

		if cmd.Flags().Changed("name") {
			o.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("phone") {
			o.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("note") {
			o.Note, _ = cmd.Flags().GetString("note")
		}
		return a.Owners.Update(o)
	},
}

var ownerDeleteCmd = &cobra.Command{
	Use:   "delete CODE",
	Short: "Delete an owner without properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OwnerDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Owners.Delete(args[0])
	},
}

var ownerSearchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search owners by name or phone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OwnerSearch")
		if err != nil {
			return err
		}
		defer a.Close()

		owners, err := a.Owners.Search(args[0])
		if err != nil {
			return err
		}
		printOwners(owners)
		return nil
	},
}

var ownerStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View owner statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OwnerStatistics")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Owners.Statistics()
		if err != nil {
			return err
		}
		fmt.Printf("Total owners:       %d\n", stats.Total)
		fmt.Printf("With properties:    %d\n", stats.WithProperties)
		fmt.Printf("Without properties: %d\n", stats.WithoutProperties)
		return nil
	},
}

func printOwners(owners []*rem.Owner) {
	if len(owners) == 0 {
		fmt.Println("No owners found.")
		return
	}
	for _, o := range owners {
		fmt.Printf("%s  %-30s  %s\n", o.Code, o.Name, o.Phone)
	}
}

func init() {
	ownerAddCmd.Flags().String("phone", "", "Phone number")
	ownerAddCmd.Flags().String("note", "", "Free-text note")
	ownerAddCmd.Flags().String("code", "", "Owner code (generated when omitted)")

	ownerUpdateCmd.Flags().String("name", "", "New display name")
	ownerUpdateCmd.Flags().String("phone", "", "New phone number")
	ownerUpdateCmd.Flags().String("note", "", "New note")

	ownerCmd.AddCommand(ownerAddCmd)
	ownerCmd.AddCommand(ownerListCmd)
	ownerCmd.AddCommand(ownerShowCmd)
	ownerCmd.AddCommand(ownerUpdateCmd)
	ownerCmd.AddCommand(ownerDeleteCmd)
	ownerCmd.AddCommand(ownerSearchCmd)
	ownerCmd.AddCommand(ownerStatsCmd)
}
