package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/internal/gateway"
	"github.com/ecotrackhq/ecotrack/pkg/session"
)

// apiClient builds a gateway client over the per-user session file.
func apiClient() (*gateway.Client, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	store := session.New(&session.FileBackend{Path: session.DefaultPath()})
	return gateway.New(store), nil
}

func prompt(label string) string {
	fmt.Print(label + ": ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

var (
	loginEmail    string
	loginPassword string
)

// ecotrack login
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			email = prompt("Email")
		}
		password := loginPassword
		if password == "" {
			password = prompt("Password")
		}

		res, err := client.Login(email, password)
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s %s <%s> (%s)\n",
			res.User.FirstName, res.User.LastName, res.User.Email, res.User.Role)
		return nil
	},
}

// ecotrack logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

// ecotrack whoami
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account and its dashboard access",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}

		guard := gateway.NewGuard(client)
		access, err := guard.Check()
		if err != nil {
			return err
		}
		if access == gateway.Unauthenticated {
			fmt.Println("Not signed in.")
			return nil
		}

		me, err := client.WhoAmI()
		if err != nil {
			return err
		}
		fmt.Printf("%s %s <%s>\nRole: %s\nDashboard access: %v\n",
			me.User.FirstName, me.User.LastName, me.User.Email, me.User.Role, me.AdminAccess)
		return nil
	},
}

// ecotrack materials
var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the materials the platform buys",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}

		materials, err := client.Materials()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tNAME\tUNIT\tPRICE/UNIT\tHAZARDOUS")
		for _, m := range materials {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%v\n",
				m.ID, m.Code, m.Name, m.Unit, m.PricePerUnit, m.Hazardous)
		}
		return w.Flush()
	},
}

var pickupStatusFlag string

// ecotrack pickups
var pickupsCmd = &cobra.Command{
	Use:   "pickups",
	Short: "List your pickup requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}

		pickups, err := client.MyPickups()
		if err != nil {
			return err
		}
		printPickups(pickups)
		return nil
	},
}

// ecotrack pickups all — dashboard view, dashboard roles only.
var pickupsAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List every pickup request (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}

		pickups, err := client.Pickups(pickupStatusFlag)
		if err != nil {
			return err
		}
		printPickups(pickups)
		return nil
	},
}

func printPickups(pickups []models.PickupRequest) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tMATERIAL\tQTY\tSTATUS\tPAYOUT\tDATE\tSCHEDULED\tDRIVER")
	for _, p := range pickups {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Material.Name, p.Quantity, p.Status, p.PayoutMethod,
			p.PickupDate, p.ScheduledTime, p.DriverName)
	}
	w.Flush()
}

var acceptFlags struct {
	schedule string
	driver   string
}

// ecotrack pickups accept <id> — the admin decision with an optional
// collection plan.
var pickupsAcceptCmd = &cobra.Command{
	Use:   "accept <id>",
	Short: "Accept a pending pickup request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid pickup id %q", args[0])
		}

		client, err := apiClient()
		if err != nil {
			return err
		}

		pickup, err := client.AcceptPickup(uint(id), acceptFlags.schedule, acceptFlags.driver)
		if err != nil {
			return err
		}

		fmt.Printf("Pickup #%d accepted", pickup.ID)
		if pickup.ScheduledTime != "" {
			fmt.Printf(", scheduled %s", pickup.ScheduledTime)
		}
		if pickup.DriverName != "" {
			fmt.Printf(", driver %s", pickup.DriverName)
		}
		fmt.Println(".")
		return nil
	},
}

var sellFlags struct {
	materialID    uint
	quantity      float64
	address       string
	date          string
	notes         string
	payout        string
	accountName   string
	accountNumber string
}

// ecotrack sell — the sell flow in one command. Details and payment are
// collected as two wizard steps, then submitted together.
var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Request a pickup for recyclable material",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}

		wizard := gateway.NewSellWizard(client)
		wizard.SetDetails(gateway.Details{
			MaterialID: sellFlags.materialID,
			Quantity:   sellFlags.quantity,
			Address:    sellFlags.address,
			PickupDate: sellFlags.date,
			Notes:      sellFlags.notes,
		})
		wizard.SetPayment(gateway.Payment{
			Method:        sellFlags.payout,
			AccountName:   sellFlags.accountName,
			AccountNumber: sellFlags.accountNumber,
		})

		pickup, err := wizard.Submit()
		if err != nil {
			return err
		}

		fmt.Printf("Pickup request #%d created (%s).\n", pickup.ID, pickup.Status)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")

	pickupsCmd.AddCommand(pickupsAllCmd)
	pickupsAllCmd.Flags().StringVar(&pickupStatusFlag, "status", "", "Filter by status (Pending, Accepted, Rejected, Completed)")

	pickupsCmd.AddCommand(pickupsAcceptCmd)
	pickupsAcceptCmd.Flags().StringVar(&acceptFlags.schedule, "schedule", "", "Collection time, e.g. \"2026-09-05 10:00\"")
	pickupsAcceptCmd.Flags().StringVar(&acceptFlags.driver, "driver", "", "Assigned driver name")

	sellCmd.Flags().UintVar(&sellFlags.materialID, "material", 0, "Material ID (see: ecotrack materials)")
	sellCmd.Flags().Float64Var(&sellFlags.quantity, "quantity", 0, "Quantity in the material's unit")
	sellCmd.Flags().StringVar(&sellFlags.address, "address", "", "Pickup address")
	sellCmd.Flags().StringVar(&sellFlags.date, "date", "", "Preferred pickup date (YYYY-MM-DD)")
	sellCmd.Flags().StringVar(&sellFlags.notes, "notes", "", "Notes for the collection team")
	sellCmd.Flags().StringVar(&sellFlags.payout, "payout", "Cash", "Payout method: Cash, JazzCash, EasyPaisa")
	sellCmd.Flags().StringVar(&sellFlags.accountName, "account-name", "", "Payout account name (wallet payouts)")
	sellCmd.Flags().StringVar(&sellFlags.accountNumber, "account-number", "", "Payout account number (wallet payouts)")

	_ = sellCmd.MarkFlagRequired("material")
	_ = sellCmd.MarkFlagRequired("quantity")
	_ = sellCmd.MarkFlagRequired("address")
}
