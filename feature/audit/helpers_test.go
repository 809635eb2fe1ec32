package audit

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"livery-audit/core/database"
	"livery-audit/core/miz"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// scenarioMission requires aggressor and default on the F-16 and default on the MiG-29.
const scenarioMission = `
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
									[2] = { ["type"] = "F-16C_50", ["livery_id"] = "default" },
								},
							},
						},
					},
				},
			},
		},
		["red"] = {
			["country"] = {
				[1] = {
					["plane"] = {
						["group"] = {
							[1] = {
								["units"] = {
									[1] = { ["type"] = "MiG-29A", ["livery_id"] = "default" },
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

func mizArchive(t *testing.T, src string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(miz.ScriptEntry)
	require.NoError(t, err)
	_, err = w.Write([]byte(src))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// installation creates a liveries tree with the given type/livery folders.
func installation(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "Bazar", "Liveries", filepath.FromSlash(p)), 0o755))
	}
	return root
}

func setupHistory(t *testing.T) (*History, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	history := NewHistory(db)
	require.NoError(t, history.Prepare(true))
	return history, db
}
