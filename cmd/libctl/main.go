// libctl is the operations CLI: table setup, catalog migration, bulk
// cover extraction, and one-off metadata fixes.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"library-backend/application/commands"
	"library-backend/domain/catalog"
	"library-backend/infrastructure/config"
	"library-backend/infrastructure/di"
	dynamorepo "library-backend/infrastructure/persistence/dynamodb"
	apperrors "library-backend/pkg/errors"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	root := &cobra.Command{
		Use:           "libctl",
		Short:         "Library backend operations tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSetupTablesCmd(),
		newMigrateCmd(),
		newCoversCmd(),
		newUpdateBookCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newSetupTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup-tables",
		Short: "Create the catalog table and its indexes if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			awsCfg, err := awsconfig.LoadDefaultConfig(cmd.Context(), awsconfig.WithRegion(cfg.AWSRegion))
			if err != nil {
				return err
			}

			client := awsdynamodb.NewFromConfig(awsCfg)
			if err := dynamorepo.EnsureTable(cmd.Context(), client, dynamorepo.TableSpec{
				TableName:  cfg.TableName,
				TitleIndex: cfg.TitleIndexName,
				FileIndex:  cfg.FileIndexName,
			}); err != nil {
				return err
			}

			fmt.Printf("Table %s is ready\n", cfg.TableName)
			return nil
		},
	}
}

// seedEntry is one record in a YAML catalog seed file.
type seedEntry struct {
	Filename    string   `yaml:"filename"`
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Genre       string   `yaml:"genre"`
	Language    string   `yaml:"language"`
	Year        int      `yaml:"year"`
	ISBN        string   `yaml:"isbn"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

func newMigrateCmd() *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Populate the catalog from the bucket, or from a YAML seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			container, err := di.InitializeContainer(ctx, cfg)
			if err != nil {
				return err
			}

			if seedFile != "" {
				return migrateFromSeed(ctx, container, seedFile)
			}
			return migrateFromBucket(ctx, container, cfg.BooksPrefix)
		},
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file with catalog entries")
	return cmd
}

func migrateFromSeed(ctx context.Context, container *di.Container, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	saved := 0
	for _, entry := range entries {
		if exists, err := bookExists(ctx, container, entry.Filename); err != nil {
			fmt.Fprintf(os.Stderr, "failed to check %s: %v\n", entry.Filename, err)
			continue
		} else if exists {
			continue
		}

		book, err := catalog.NewBook(entry.Filename, entry.Title, entry.Author, entry.Genre, entry.Language)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", entry.Filename, err)
			continue
		}
		book.Year = entry.Year
		book.ISBN = entry.ISBN
		book.Description = entry.Description
		book.Tags = entry.Tags

		if err := container.BookRepo.Save(ctx, book); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save %s: %v\n", entry.Filename, err)
			continue
		}
		saved++
	}

	fmt.Printf("Migrated %d of %d entries\n", saved, len(entries))
	return nil
}

// bookExists resolves a filename through the file index.
func bookExists(ctx context.Context, container *di.Container, filename string) (bool, error) {
	_, err := container.BookRepo.GetByFilename(ctx, filename)
	if err == nil {
		return true, nil
	}
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func migrateFromBucket(ctx context.Context, container *di.Container, booksPrefix string) error {
	entries, err := container.Store.List(ctx, booksPrefix)
	if err != nil {
		return err
	}

	saved := 0
	skipped := 0
	for _, entry := range entries {
		filename := catalog.BaseFilename(entry.Key, booksPrefix)
		if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			continue
		}

		// Re-running the migration must not duplicate existing entries.
		if exists, err := bookExists(ctx, container, filename); err != nil {
			fmt.Fprintf(os.Stderr, "failed to check %s: %v\n", filename, err)
			continue
		} else if exists {
			skipped++
			continue
		}

		book := catalog.BookFromFilename(filename)
		if book == nil {
			continue
		}
		if err := container.BookRepo.Save(ctx, book); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save %s: %v\n", filename, err)
			continue
		}
		saved++
	}

	fmt.Printf("Migrated %d books from the bucket (%d already present)\n", saved, skipped)
	return nil
}

func newCoversCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "covers [filename...]",
		Short: "Extract covers for the named files, or for every PDF in the bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			container, err := di.InitializeContainer(ctx, cfg)
			if err != nil {
				return err
			}

			filenames := args
			if len(filenames) == 0 {
				entries, err := container.Store.List(ctx, cfg.BooksPrefix)
				if err != nil {
					return err
				}
				for _, entry := range entries {
					filename := catalog.BaseFilename(entry.Key, cfg.BooksPrefix)
					if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
						filenames = append(filenames, filename)
					}
				}
			}

			failed := 0
			start := time.Now()
			for _, filename := range filenames {
				var err error
				if force {
					_, err = container.Extractor.Extract(ctx, filename)
				} else {
					_, err = container.Extractor.CoverURL(ctx, filename)
				}
				if err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "cover failed for %s: %v\n", filename, err)
					continue
				}
				fmt.Printf("cover ready: %s\n", filename)
			}

			fmt.Printf("Processed %d files (%d failed) in %s\n", len(filenames), failed, time.Since(start).Round(time.Second))
			if failed > 0 {
				return fmt.Errorf("%d covers failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "re-render covers even when one already exists")
	return cmd
}

func newUpdateBookCmd() *cobra.Command {
	var (
		title       string
		author      string
		genre       string
		language    string
		year        int
		isbn        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update-book <book-id>",
		Short: "Update catalog metadata for one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			container, err := di.InitializeContainer(ctx, cfg)
			if err != nil {
				return err
			}

			update := commands.UpdateBookCommand{
				BookID:      args[0],
				Title:       title,
				Author:      author,
				Genre:       genre,
				Language:    language,
				Year:        year,
				ISBN:        isbn,
				Description: description,
			}
			if err := container.CommandBus.Send(ctx, update); err != nil {
				return err
			}

			fmt.Printf("Updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "book author")
	cmd.Flags().StringVar(&genre, "genre", "", "book genre")
	cmd.Flags().StringVar(&language, "language", "", "book language")
	cmd.Flags().IntVar(&year, "year", 0, "publication year")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&description, "description", "", "description")
	return cmd
}
