// Command clinic runs the front-desk workflows of a small practice:
// the treatment catalog, patient billing with prescriptions, and
// appointment scheduling.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adilwahab585-svg/Reimagine-clinic/internal/appointments"
	"github.com/adilwahab585-svg/Reimagine-clinic/internal/billing"
	"github.com/adilwahab585-svg/Reimagine-clinic/internal/catalog"
	"github.com/adilwahab585-svg/Reimagine-clinic/internal/config"
	"github.com/adilwahab585-svg/Reimagine-clinic/internal/notify"
	"github.com/adilwahab585-svg/Reimagine-clinic/internal/printing"
	"github.com/adilwahab585-svg/Reimagine-clinic/internal/records"
	"github.com/adilwahab585-svg/Reimagine-clinic/internal/session"
	"github.com/adilwahab585-svg/Reimagine-clinic/pkg/logging"
)

type app struct {
	cfg    *config.Config
	logger *logging.Logger
	cat    *catalog.Catalog
	store  *appointments.Store
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "clinic",
		Short:        "Billing, prescriptions and appointments for a small practice",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.bootstrap(cmd)
		},
	}

	rootCmd.AddCommand(a.treatmentsCmd())
	rootCmd.AddCommand(a.appointmentsCmd())
	rootCmd.AddCommand(a.billCmd())

	return rootCmd
}

// bootstrap wires configuration, logging and the data files, then
// surfaces tomorrow's appointments the way the front desk expects to
// see them at startup. The reminder goes to stderr so command output
// stays clean.
func (a *app) bootstrap(cmd *cobra.Command) {
	envErr := godotenv.Load()

	a.cfg = config.Load()
	a.logger = logging.New(a.cfg.LogLevel)
	if envErr != nil {
		a.logger.Debug("no .env file found, using environment variables")
	}

	a.cat = catalog.Load(a.cfg.TreatmentsPath(), a.logger)
	if a.cat.Len() == 0 {
		if err := a.cat.Save(); err != nil {
			a.logger.Warn("could not create treatments file", "error", err)
		}
	}

	a.store = appointments.NewStore(a.cfg.AppointmentsPath(), a.logger)

	if notice := notify.TomorrowNotice(a.store.Reminder()); notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}
}

func (a *app) treatmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treatments",
		Short: "Manage the treatment catalog",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show every treatment and its price",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := a.cat.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No treatments available.")
				return nil
			}
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (Rs. %d)\n", item.Name, item.Price)
			}
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a treatment to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			price, _ := cmd.Flags().GetInt("price")
			if err := a.cat.Add(name, price); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added new treatment: %s (Rs. %d)\n", strings.TrimSpace(name), price)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Treatment name")
	addCmd.Flags().Int("price", 0, "Price in whole rupees")

	removeCmd := &cobra.Command{
		Use:   "remove <name>...",
		Short: "Remove treatments from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cat.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No treatments available to remove.")
				return nil
			}
			if err := a.cat.Remove(args...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", strings.Join(args, ", "))
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}

func (a *app) appointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Book and manage appointments",
	}

	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Book a new appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			phone, _ := cmd.Flags().GetString("phone")
			date, _ := cmd.Flags().GetString("date")
			if err := a.store.Book(name, phone, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Appointment booked for %s on %s\n", strings.TrimSpace(name), strings.TrimSpace(date))
			return nil
		},
	}
	bookCmd.Flags().String("name", "", "Patient name")
	bookCmd.Flags().String("phone", "", "Patient phone number")
	bookCmd.Flags().String("date", "", "Appointment date (YYYY-MM-DD)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show upcoming appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			query, _ := cmd.Flags().GetString("search")

			saved := a.store.Load()
			if len(saved) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments found.")
				return nil
			}

			rows := saved
			if !all {
				rows = a.store.Upcoming()
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No upcoming appointments.")
					return nil
				}
			}
			for _, rec := range appointments.Search(rows, query) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  |  %s  |  %s\n", rec.Date, rec.Name, rec.Phone)
			}
			return nil
		},
	}
	listCmd.Flags().Bool("all", false, "Include past appointments")
	listCmd.Flags().String("search", "", "Filter by patient name or phone")

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Update an appointment's date or phone number",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			phone, _ := cmd.Flags().GetString("phone")
			date, _ := cmd.Flags().GetString("date")
			newDate, _ := cmd.Flags().GetString("new-date")
			newPhone, _ := cmd.Flags().GetString("new-phone")

			target := appointments.Record{
				Name:  strings.TrimSpace(name),
				Phone: strings.TrimSpace(phone),
				Date:  strings.TrimSpace(date),
			}
			if err := a.store.Edit(target, newDate, newPhone); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Appointment updated for %s.\n", target.Name)
			return nil
		},
	}
	editCmd.Flags().String("name", "", "Patient name")
	editCmd.Flags().String("phone", "", "Current phone number")
	editCmd.Flags().String("date", "", "Current date (YYYY-MM-DD)")
	editCmd.Flags().String("new-date", "", "New date, empty keeps the current one")
	editCmd.Flags().String("new-phone", "", "New phone number, empty keeps the current one")

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			phone, _ := cmd.Flags().GetString("phone")
			date, _ := cmd.Flags().GetString("date")

			target := appointments.Record{
				Name:  strings.TrimSpace(name),
				Phone: strings.TrimSpace(phone),
				Date:  strings.TrimSpace(date),
			}
			found, err := a.store.Delete(target)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no appointment found for %s (%s) on %s", target.Name, target.Phone, target.Date)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Appointment for %s on %s deleted.\n", target.Name, target.Date)
			return nil
		},
	}
	deleteCmd.Flags().String("name", "", "Patient name")
	deleteCmd.Flags().String("phone", "", "Patient phone number")
	deleteCmd.Flags().String("date", "", "Appointment date (YYYY-MM-DD)")

	remindersCmd := &cobra.Command{
		Use:   "reminders",
		Short: "Show appointments due tomorrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			notice := notify.TomorrowNotice(a.store.Reminder())
			if notice == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments due tomorrow.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), notice)
			return nil
		},
	}

	cmd.AddCommand(bookCmd, listCmd, editCmd, deleteCmd, remindersCmd)
	return cmd
}

func (a *app) billCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Generate a bill and prescription for a visit",
		Long: `Generate the combined bill and prescription for a patient visit.

The rendered documents are printed to stdout and archived into the
records folder under today's date. Treatments are billed at their
catalog price unless the flag value carries an explicit override,
e.g. --treatment "Acne Facial" --treatment "Laser Session=2500".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			phone, _ := flags.GetString("phone")
			vip, _ := flags.GetBool("vip")
			discount, _ := flags.GetInt("discount")
			treatments, _ := flags.GetStringArray("treatment")
			prescription, _ := flags.GetString("prescription")
			allowPhone, _ := flags.GetBool("allow-unusual-phone")
			doSave, _ := flags.GetBool("save")
			doPrint, _ := flags.GetBool("print")

			writer := records.NewWriter(a.cfg.RecordsPath(), a.cfg.ExportPath())
			spool := printing.NewSpool(&printing.CommandPrinter{Command: a.cfg.PrintCommand}, a.cfg.PrintCleanupDelay, a.logger)
			visit := session.New(a.cat, billing.NewFormatter(a.cfg.ClinicName), writer, spool, a.cfg.DefaultVIPDiscount, a.logger)

			visit.SetPatient(name, phone)
			if vip {
				visit.SetPatientType(billing.TypeVIP)
			}
			if flags.Changed("discount") {
				visit.SetVIPDiscount(discount)
			}
			visit.AllowUnusualPhone(allowPhone)
			visit.SetPrescription(prescription)
			if err := selectTreatments(visit, treatments); err != nil {
				return err
			}

			doc, err := visit.Generate()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)

			if doSave {
				path, err := visit.SaveToFile()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bill and prescription saved to:\n%s\n", path)
			}
			if doPrint {
				if err := visit.Print(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Document sent to printer")
				spool.Drain()
			}
			return nil
		},
	}

	cmd.Flags().String("name", "", "Patient name")
	cmd.Flags().String("phone", "", "Patient phone number")
	cmd.Flags().Bool("vip", false, "Bill as a VIP patient")
	cmd.Flags().Int("discount", 0, "VIP discount percentage, defaults to the configured value")
	cmd.Flags().StringArray("treatment", nil, `Treatment to bill, "Name" or "Name=price" (repeatable)`)
	cmd.Flags().String("prescription", "", "Prescription text")
	cmd.Flags().Bool("allow-unusual-phone", false, "Accept a phone number that fails the format check")
	cmd.Flags().Bool("save", false, "Also export the documents to the txt folder")
	cmd.Flags().Bool("print", false, "Also send the documents to the printer")

	return cmd
}

// selectTreatments applies --treatment values to the visit. A value is
// either a bare catalog name or "Name=price" with a per-visit price
// override; the split is on the last equals sign.
func selectTreatments(visit *session.Session, values []string) error {
	for _, raw := range values {
		name := strings.TrimSpace(raw)
		var price int
		override := false
		if i := strings.LastIndex(raw, "="); i >= 0 {
			p, err := strconv.Atoi(strings.TrimSpace(raw[i+1:]))
			if err != nil {
				return fmt.Errorf("invalid treatment %q: price must be a whole number", raw)
			}
			name = strings.TrimSpace(raw[:i])
			price = p
			override = true
		}
		if name == "" {
			return fmt.Errorf("invalid treatment %q: name is required", raw)
		}
		visit.Select(name)
		if override {
			if err := visit.SetLinePrice(name, price); err != nil {
				return err
			}
		}
	}
	return nil
}
