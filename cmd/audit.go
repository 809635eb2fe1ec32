package cmd

import (
	"livery-audit/core/output"

	"github.com/spf13/cobra"
)

var (
	auditRoots  []string
	auditFormat string
)

// auditCmd checks a mission against the installation.
var auditCmd = &cobra.Command{
	Use:   "audit <mission>",
	Short: "Check that every livery a mission requires is installed",
	Long: `Extracts the liveries a mission requires and checks each of them against
the liveries folders of the installation roots.

Every required livery id must be installed under its vehicle type. The exit
status is 0 when all of them are, 2 when some are missing and 1 when the
audit could not run.

Examples:
  livery-audit audit strike.miz --install-root "/games/DCS World"
  INSTALL_ROOTS="/games/DCS World,/home/pilot/Saved Games/DCS" livery-audit audit strike.miz -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringArrayVar(&auditRoots, "install-root", nil, "Installation root, local or s3://bucket/prefix (repeatable)")
	auditCmd.Flags().StringVarP(&auditFormat, "output", "o", "text", "Output format: text, json or yaml")
	RootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(auditFormat)
	if err != nil {
		return NewExitError(err, ExitFailure)
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	roots, err := e.installRoots(auditRoots)
	if err != nil {
		return err
	}
	svc, err := e.service(roots, nil, e.history(), args[0])
	if err != nil {
		return err
	}

	report, err := svc.AuditFile(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if err := output.NewPrinter(cmd.OutOrStdout(), format, e.colors).Report(report); err != nil {
		return err
	}
	return report.Err()
}
