package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"livery-audit/core/reconcile"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const strikeMission = `
mission = {
	["coalition"] = {
		["blue"] = {
			["country"] = {
				[1] = {
					["plane"] = {
						["group"] = {
							[1] = {
								["units"] = {
									[1] = { ["type"] = "F-16C_50", ["livery_id"] = "aggressor" },
								},
							},
						},
					},
				},
			},
		},
	},
}
`

// resetFlags restores every flag to its default between runs.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("INSTALL_ROOTS", "")
	resetFlags(RootCmd)
	t.Cleanup(func() { resetFlags(RootCmd) })

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append(args, "--config-dir", t.TempDir(), "--color", "never"))
	err := RootCmd.Execute()
	return out.String(), err
}

func writeMission(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mission")
	require.NoError(t, os.WriteFile(path, []byte(strikeMission), 0o644))
	return path
}

func installRoot(t *testing.T, liveries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, l := range liveries {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "Liveries", filepath.FromSlash(l)), 0o755))
	}
	return root
}

func TestExitCodeFromError(t *testing.T) {
	unmet := multierr.Combine(
		fmt.Errorf("%w: no stock liveries for mig-29a", reconcile.ErrUnmetRequirements),
		fmt.Errorf("%w: missing liveries for f-16c_50: aggressor", reconcile.ErrUnmetRequirements),
	)

	assert.Equal(t, ExitSuccess, ExitCodeFromError(nil))
	assert.Equal(t, ExitFailure, ExitCodeFromError(errors.New("boom")))
	assert.Equal(t, ExitUnmet, ExitCodeFromError(unmet))
	assert.Equal(t, 7, ExitCodeFromError(fmt.Errorf("wrapped: %w", NewExitError(errors.New("x"), 7))))
}

func TestExtractCommand(t *testing.T) {
	out, err := run(t, "extract", writeMission(t))

	require.NoError(t, err)
	assert.Equal(t, "Required liveries:\n  f-16c_50: aggressor\n", out)
}

func TestExtractCommand_JSON(t *testing.T) {
	out, err := run(t, "extract", writeMission(t), "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"f-16c_50":["aggressor"]}`, out)
}

func TestExtractCommand_Errors(t *testing.T) {
	_, err := run(t, "extract", filepath.Join(t.TempDir(), "missing.miz"))
	assert.Equal(t, ExitFailure, ExitCodeFromError(err))

	_, err = run(t, "extract", writeMission(t), "-o", "table")
	assert.ErrorContains(t, err, "invalid output format")
	assert.Equal(t, ExitFailure, ExitCodeFromError(err))
}

func TestAuditCommand_OK(t *testing.T) {
	root := installRoot(t, "f-16c_50/aggressor")

	out, err := run(t, "audit", writeMission(t), "--install-root", root)

	require.NoError(t, err)
	assert.Equal(t, "✔ All 1 required liveries installed for 1 vehicle types\n", out)
}

func TestAuditCommand_Unmet(t *testing.T) {
	root := installRoot(t, "f-16c_50/other_skin")

	out, err := run(t, "audit", writeMission(t), "--install-root", root)

	require.Error(t, err)
	assert.Equal(t, ExitUnmet, ExitCodeFromError(err))
	assert.Contains(t, out, "missing liveries for f-16c_50: aggressor")
}

func TestAuditCommand_NoStockLiveries(t *testing.T) {
	first := installRoot(t)
	second := installRoot(t, "mig-29a/default")

	_, err := run(t, "audit", writeMission(t), "--install-root", first, "--install-root", second)

	assert.Equal(t, ExitUnmet, ExitCodeFromError(err))
	assert.ErrorContains(t, err, "no stock liveries for f-16c_50")
}

func TestAuditCommand_RootsFromEnvironment(t *testing.T) {
	root := installRoot(t, "f-16c_50/aggressor")
	mission := writeMission(t)
	resetFlags(RootCmd)
	t.Cleanup(func() { resetFlags(RootCmd) })
	t.Setenv("INSTALL_ROOTS", root)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"audit", mission, "--config-dir", t.TempDir(), "--color", "never"})

	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), "All 1 required liveries installed")
}

func TestAuditCommand_NoRoots(t *testing.T) {
	_, err := run(t, "audit", writeMission(t))

	assert.ErrorContains(t, err, "no installation root")
	assert.Equal(t, ExitFailure, ExitCodeFromError(err))
}

func TestInstalledCommand(t *testing.T) {
	root := installRoot(t, "f-16c_50/aggressor", "f-16c_50/default", "su-27")

	out, err := run(t, "installed", "--install-root", root)

	require.NoError(t, err)
	assert.Equal(t, "Installed liveries:\n  f-16c_50: aggressor, default\n  su-27: (no liveries)\n", out)
}

func TestRootCommand_InvalidColor(t *testing.T) {
	resetFlags(RootCmd)
	t.Cleanup(func() { resetFlags(RootCmd) })
	RootCmd.SetArgs([]string{"extract", "mission", "--color", "rainbow"})

	err := RootCmd.Execute()

	assert.ErrorContains(t, err, `invalid color mode "rainbow"`)
	assert.Equal(t, ExitFailure, ExitCodeFromError(err))
}
