package cmd

import (
	"fmt"
	"time"

	"github.com/rollmark/rollmark/internal/config"
	"github.com/spf13/cobra"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "List attendance records for a day",
	RunE:  runAttendance,
}

func init() {
	rootCmd.AddCommand(attendanceCmd)

	attendanceCmd.Flags().String("date", "", "Day to list (YYYY-MM-DD, defaults to today)")
}

func runAttendance(cmd *cobra.Command, args []string) error {
	date := mustGetString(cmd, "date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}

	cfg := config.Load()
	pool, _, attendanceRepo, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	records, err := attendanceRepo.ListByDate(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("listing attendance: %w", err)
	}
	if len(records) == 0 {
		fmt.Printf("No attendance recorded on %s.\n", date)
		return nil
	}

	fmt.Printf("Attendance for %s:\n\n", date)
	fmt.Printf("%-12s %-28s %s\n", "ROLL", "NAME", "TIME")
	for _, rec := range records {
		fmt.Printf("%-12s %-28s %s\n", rec.Roll, rec.Name, rec.Time)
	}
	fmt.Printf("\n%d present\n", len(records))
	return nil
}
