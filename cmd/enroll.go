package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Image formats accepted for enrollment photos.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/rollmark/rollmark/internal/config"
	"github.com/rollmark/rollmark/internal/encoder"
	"github.com/rollmark/rollmark/internal/recognition"
	"github.com/rollmark/rollmark/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a student from a photo",
	Long: `Enroll a student by encoding a single-face photo into the registry.
The photo must contain exactly one face.`,
	RunE: runEnroll,
}

var enrollBatchCmd = &cobra.Command{
	Use:   "batch <roster.yaml>",
	Short: "Enroll students from a YAML roster",
	Long: `Enroll many students at once from a YAML roster file:

    students:
      - roll: S1
        name: Alice Smith
        class_name: "10"
        section: A
        image: photos/alice.jpg

Entries that fail (duplicate roll, unreadable photo, no face) are reported
and skipped; the rest are enrolled.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrollBatch,
}

func init() {
	rootCmd.AddCommand(enrollCmd)
	enrollCmd.AddCommand(enrollBatchCmd)

	enrollCmd.Flags().String("image", "", "Path to the enrollment photo (required)")
	enrollCmd.Flags().String("roll", "", "Unique roll number (required)")
	enrollCmd.Flags().String("name", "", "Student name (required)")
	enrollCmd.Flags().String("class", "", "Class name")
	enrollCmd.Flags().String("section", "", "Section")
	enrollCmd.MarkFlagRequired("image")
	enrollCmd.MarkFlagRequired("roll")
	enrollCmd.MarkFlagRequired("name")
}

// readEnrollmentPhoto loads an image file and verifies it decodes as one of
// the supported formats before it is sent anywhere.
func readEnrollmentPhoto(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%q is not a readable image: %w", path, err)
	} else if format == "" {
		return nil, fmt.Errorf("%q is not a readable image", path)
	}
	return data, nil
}

// enrollOne encodes a photo and inserts the student through the registry.
func enrollOne(ctx context.Context, registry *recognition.Registry, enc *encoder.Client, s storage.Student, photoPath string) error {
	data, err := readEnrollmentPhoto(photoPath)
	if err != nil {
		return err
	}

	faces, err := enc.EncodeFaces(ctx, data)
	if err != nil {
		return fmt.Errorf("encoding photo: %w", err)
	}
	switch {
	case len(faces) == 0:
		return errors.New("no face detected in the photo")
	case len(faces) > 1:
		return fmt.Errorf("photo contains %d faces, need exactly one", len(faces))
	}

	s.Embedding = faces[0].Embedding
	return registry.Add(ctx, s)
}

func runEnroll(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	pool, studentRepo, _, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := recognition.NewRegistry(studentRepo)
	enc := encoder.NewClient(cfg.Encoder.URL)

	student := storage.Student{
		Roll:      mustGetString(cmd, "roll"),
		Name:      mustGetString(cmd, "name"),
		ClassName: mustGetString(cmd, "class"),
		Section:   mustGetString(cmd, "section"),
	}
	if err := enrollOne(cmd.Context(), registry, enc, student, mustGetString(cmd, "image")); err != nil {
		return err
	}

	fmt.Printf("Enrolled %s (roll %s)\n", student.Name, student.Roll)
	return nil
}

// roster is the YAML schema for batch enrollment.
type roster struct {
	Students []rosterEntry `yaml:"students"`
}

type rosterEntry struct {
	Roll      string `yaml:"roll"`
	Name      string `yaml:"name"`
	ClassName string `yaml:"class_name"`
	Section   string `yaml:"section"`
	Image     string `yaml:"image"`
}

func runEnrollBatch(cmd *cobra.Command, args []string) error {
	rosterPath := args[0]
	data, err := os.ReadFile(rosterPath)
	if err != nil {
		return fmt.Errorf("reading roster: %w", err)
	}
	var r roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("parsing roster: %w", err)
	}
	if len(r.Students) == 0 {
		fmt.Println("Roster contains no students.")
		return nil
	}

	cfg := config.Load()
	pool, studentRepo, _, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := recognition.NewRegistry(studentRepo)
	enc := encoder.NewClient(cfg.Encoder.URL)

	bar := progressbar.NewOptions(len(r.Students),
		progressbar.OptionSetDescription("Enrolling students"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("students"),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	// Image paths in the roster are relative to the roster file.
	baseDir := filepath.Dir(rosterPath)
	var failures []string
	for _, entry := range r.Students {
		student := storage.Student{
			Roll:      entry.Roll,
			Name:      entry.Name,
			ClassName: entry.ClassName,
			Section:   entry.Section,
		}
		photoPath := entry.Image
		if !filepath.IsAbs(photoPath) {
			photoPath = filepath.Join(baseDir, photoPath)
		}
		if err := enrollOne(cmd.Context(), registry, enc, student, photoPath); err != nil {
			failures = append(failures, fmt.Sprintf("%s (%s): %v", entry.Name, entry.Roll, err))
		}
		bar.Add(1)
	}
	fmt.Println()

	fmt.Printf("Enrolled %d of %d students\n", len(r.Students)-len(failures), len(r.Students))
	for _, f := range failures {
		fmt.Printf("  skipped %s\n", f)
	}
	return nil
}
