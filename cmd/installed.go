package cmd

import (
	"livery-audit/core/output"

	"github.com/spf13/cobra"
)

var (
	installedRoots  []string
	installedFormat string
)

// installedCmd prints the liveries found in the installation roots.
var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "List the liveries installed in the installation roots",
	Long: `Walks every installation root looking for liveries folders and prints
the livery folders found, grouped by vehicle type.

Examples:
  livery-audit installed --install-root "/games/DCS World" --install-root ~/Saved\ Games/DCS
  INSTALL_ROOTS=s3://mirror/dcs livery-audit installed -o yaml`,
	Args: cobra.NoArgs,
	RunE: runInstalled,
}

func init() {
	installedCmd.Flags().StringArrayVar(&installedRoots, "install-root", nil, "Installation root, local or s3://bucket/prefix (repeatable)")
	installedCmd.Flags().StringVarP(&installedFormat, "output", "o", "text", "Output format: text, json or yaml")
	RootCmd.AddCommand(installedCmd)
}

func runInstalled(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(installedFormat)
	if err != nil {
		return NewExitError(err, ExitFailure)
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	roots, err := e.installRoots(installedRoots)
	if err != nil {
		return err
	}
	svc, err := e.service(roots, nil, nil)
	if err != nil {
		return err
	}

	installed, err := svc.Installed(commandContext(cmd))
	if err != nil {
		return err
	}

	return output.NewPrinter(cmd.OutOrStdout(), format, e.colors).Map("Installed liveries:", installed)
}
