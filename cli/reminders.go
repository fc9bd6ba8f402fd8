// File: /cli/reminders.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"carservice-api/database"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Manage service reminders",
}

var remindersCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Notify owners about due reminders once and exit",
	Long: `Scans pending reminders that are overdue or due within the upcoming
window and emails their owners. Reminders notified within the throttle
period are skipped.`,
	RunE: runRemindersCheck,
}

func init() {
	remindersCmd.AddCommand(remindersCheckCmd)
	rootCmd.AddCommand(remindersCmd)
}

func runRemindersCheck(cmd *cobra.Command, _ []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	reminders, closePublisher, err := newReminderService(db)
	if err != nil {
		return err
	}
	defer closePublisher()

	result, err := reminders.CheckReminders(cmd.Context())
	if err != nil {
		return fmt.Errorf("reminder check failed: %w", err)
	}

	cmd.Printf("Scanned %d reminders: %d notified, %d skipped, %d failed.\n",
		result.Scanned, result.Notified, result.Skipped, result.Failed)
	return nil
}
