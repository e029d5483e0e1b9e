package cmd

import (
	"fmt"

	"github.com/rollmark/rollmark/internal/config"
	"github.com/spf13/cobra"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List enrolled students",
	RunE:  runStudents,
}

func init() {
	rootCmd.AddCommand(studentsCmd)
}

func runStudents(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	pool, studentRepo, _, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	students, err := studentRepo.ListStudents(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing students: %w", err)
	}
	if len(students) == 0 {
		fmt.Println("No students enrolled.")
		return nil
	}

	fmt.Printf("%-12s %-28s %-10s %-8s %s\n", "ROLL", "NAME", "CLASS", "SECTION", "ENROLLED")
	for _, s := range students {
		fmt.Printf("%-12s %-28s %-10s %-8s %s\n",
			s.Roll, s.Name, s.ClassName, s.Section, s.CreatedAt.Format("2006-01-02"))
	}
	fmt.Printf("\n%d students\n", len(students))
	return nil
}
