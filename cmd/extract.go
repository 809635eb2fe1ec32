package cmd

import (
	"livery-audit/core/output"

	"github.com/spf13/cobra"
)

var extractFormat string

// extractCmd prints the liveries a mission requires.
var extractCmd = &cobra.Command{
	Use:   "extract <mission>",
	Short: "List the liveries a mission requires",
	Long: `Decodes the mission script of a .miz archive (or a bare mission script)
and prints the livery ids assigned to its units, grouped by vehicle type.

Examples:
  livery-audit extract strike.miz
  livery-audit extract s3://missions/campaign/strike.miz --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "output", "o", "text", "Output format: text, json or yaml")
	RootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(extractFormat)
	if err != nil {
		return NewExitError(err, ExitFailure)
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	svc, err := e.service(nil, nil, nil, args[0])
	if err != nil {
		return err
	}

	required, err := svc.ExtractFile(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	return output.NewPrinter(cmd.OutOrStdout(), format, e.colors).Map("Required liveries:", required)
}
