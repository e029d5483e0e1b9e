package cmd

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rollmark/rollmark/internal/config"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all attendance records to CSV",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("out", "attendance.csv", "Output CSV file")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	pool, _, attendanceRepo, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	records, err := attendanceRepo.ListAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing attendance: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No attendance records to export.")
		return nil
	}

	outPath := mustGetString(cmd, "out")
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"roll", "name", "date", "time"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetDescription("Exporting attendance"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
	for _, rec := range records {
		if err := writer.Write([]string{rec.Roll, rec.Name, rec.Date, rec.Time}); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
		bar.Add(1)
	}
	fmt.Println()

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	fmt.Printf("Exported %d records to %s\n", len(records), outPath)
	return nil
}
