package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridetracker/ridetracker/internal/dashboard"
	"github.com/ridetracker/ridetracker/internal/rides"
)

var (
	addPlatform string
	addValue    string
	addDate     string

	editPlatform string
	editValue    string
	editPayment  string

	deleteYes bool
)

var addCmd = &cobra.Command{
	Use:   "add --value VALUE [--platform NAME] [--date YYYY-MM-DD]",
	Short: "Register a ride",
	Long: `Register a ride with the API and print the refreshed dashboard.
The value accepts a dot or a comma as decimal separator. The date
defaults to today.

Examples:
  ridetracker add --platform Uber --value 23.50
  ridetracker add --platform 99 --value 18,90 --date 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit ID [--platform NAME] [--value VALUE] [--payment METHOD]",
	Short: "Change a ride",
	Long: `Change the platform, value or payment method of a ride. Fields
without a flag keep their current value.

Examples:
  ridetracker edit 42 --value 30
  ridetracker edit 42 --payment Pix`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a ride",
	Long: `Delete a ride after confirmation. Deleted rides cannot be restored.
Without a terminal the command only deletes when --yes is given.

Examples:
  ridetracker delete 42
  ridetracker delete 42 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	addCmd.Flags().StringVar(&addPlatform, "platform", "", "ride platform (Uber, 99, ...)")
	addCmd.Flags().StringVar(&addValue, "value", "", "amount paid")
	addCmd.Flags().StringVar(&addDate, "date", "", "ride date, YYYY-MM-DD (default today)")
	addCmd.MarkFlagRequired("value")

	editCmd.Flags().StringVar(&editPlatform, "platform", "", "new platform")
	editCmd.Flags().StringVar(&editValue, "value", "", "new amount")
	editCmd.Flags().StringVar(&editPayment, "payment", "", "new payment method")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runAdd(cmd *cobra.Command, args []string) error {
	t, err := openTerminal(cmd, newTTYConfirmer(false))
	if err != nil {
		return err
	}
	defer t.close()

	date := addDate
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}

	form := dashboard.AddForm{Platform: addPlatform, Value: addValue, Date: date}
	t.view.FillAddForm(form)

	err = t.ctrl.Create(cmd.Context(), form)
	st := t.view.Snapshot()
	printMessage(cmd.ErrOrStderr(), st.Message)
	if err != nil {
		return err
	}

	printDashboard(cmd.OutOrStdout(), st)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("platform") && !flags.Changed("value") && !flags.Changed("payment") {
		return fmt.Errorf("nothing to change: pass --platform, --value or --payment")
	}

	t, err := openTerminal(cmd, newTTYConfirmer(false))
	if err != nil {
		return err
	}
	defer t.close()

	ctx := cmd.Context()
	id := rides.ID(args[0])

	t.ctrl.RefreshHistory(ctx)
	if err := t.ctrl.OpenEdit(id); err != nil {
		return err
	}

	form := t.view.Snapshot().Edit
	if flags.Changed("platform") {
		form.Platform = editPlatform
	}
	if flags.Changed("value") {
		form.Value = editValue
	}
	if flags.Changed("payment") {
		form.PaymentMethod = editPayment
	}

	if err := t.ctrl.SaveEdit(ctx, form); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Corrida %s atualizada\n", id)
	printDashboard(cmd.OutOrStdout(), t.view.Snapshot())
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	t, err := openTerminal(cmd, newTTYConfirmer(deleteYes))
	if err != nil {
		return err
	}
	defer t.close()

	id := rides.ID(args[0])
	deleted, err := t.ctrl.Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelado.")
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Corrida %s excluída\n", id)
	printDashboard(cmd.OutOrStdout(), t.view.Snapshot())
	return nil
}
