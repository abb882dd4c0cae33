package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/actionsum/auraswitch/internal/database"
	"github.com/actionsum/auraswitch/internal/reporter"
)

var errorsOpts struct {
	json bool
	yes  bool
}

var errorsCmd = &cobra.Command{
	Use:       "errors [day|week|month]",
	Short:     "Summarize the error journal",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"day", "week", "month"},
	RunE: func(cmd *cobra.Command, args []string) error {
		periodType := "day"
		if len(args) > 0 {
			periodType = args[0]
		}

		db, err := database.Connect(cfg.Database.Path)
		if err != nil {
			return errors.Wrap(err, "failed to connect to database")
		}
		defer db.Close()

		if err := db.Initialize(); err != nil {
			return err
		}

		rep := reporter.New(database.NewRepository(db))
		report, err := rep.GenerateReport(periodType)
		if err != nil {
			return errors.Wrap(err, "failed to generate report")
		}

		if errorsOpts.json {
			out, err := rep.FormatReportJSON(report)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		fmt.Print(rep.FormatReportText(report))
		return nil
	},
}

var errorsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all error journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !errorsOpts.yes {
			fmt.Print("This will delete all journaled errors. Are you sure? (yes/no): ")
			response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			response = strings.ToLower(strings.TrimSpace(response))
			if response != "yes" && response != "y" {
				fmt.Println("Operation cancelled")
				return nil
			}
		}

		db, err := database.Connect(cfg.Database.Path)
		if err != nil {
			return errors.Wrap(err, "failed to connect to database")
		}
		defer db.Close()

		if err := db.Initialize(); err != nil {
			return err
		}

		if err := database.NewRepository(db).Clear(); err != nil {
			return err
		}

		fmt.Println("Error journal cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(errorsCmd)
	errorsCmd.AddCommand(errorsClearCmd)

	errorsCmd.Flags().BoolVar(&errorsOpts.json, "json", false, "Output the report as JSON")
	errorsClearCmd.Flags().BoolVarP(&errorsOpts.yes, "yes", "y", false, "Do not ask for confirmation")
}
