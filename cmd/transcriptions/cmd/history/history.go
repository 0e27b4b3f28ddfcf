package history

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nocdn/transcriptions-ssr/internal/app/export"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository/pg"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository/sqlite"
	"github.com/nocdn/transcriptions-ssr/internal/config"
)

var listLimit int
var outputFilePath string

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", repository.DefaultHistoryLimit, "maximum number of records to show")

	exportCmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	exportCmd.MarkFlagRequired("outputFilePath")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(exportCmd)
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage saved transcriptions",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent transcriptions, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDAO()
		defer db.Close()

		records, err := db.List(listLimit)
		if err != nil {
			log.Fatalf("Failed to list history: %v\n", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tTEXT")
		for _, r := range records {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Source, truncate(r.Transcription, 60))
		}
		w.Flush()
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one transcription by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("Invalid ID %q\n", args[0])
		}

		db := openDAO()
		defer db.Close()

		if err := db.DeleteByID(id); err != nil {
			log.Fatalf("Failed to delete record: %v\n", err)
		}
		fmt.Printf("deleted record %d\n", id)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcription history to excel",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDAO()
		defer db.Close()

		records, err := db.List(repository.DefaultHistoryLimit)
		if err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(records, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}

func openDAO() repository.HistoryDAO {
	env := config.GetEnv()

	if env.DatabaseURL != "" {
		db, err := pg.NewPostgresDB(env.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open database: %v\n", err)
		}
		return db
	}

	if dir := filepath.Dir(env.SQLitePath); dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	db, err := sqlite.NewSQLiteDB(env.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v\n", err)
	}
	return db
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
