package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"livery-audit/core/livery"
	"livery-audit/core/logger"

	"go.uber.org/zap"
)

// LiveriesDir is the lower-cased name of livery asset folders.
const LiveriesDir = "liveries"

// Scan walks the local directory root and returns the installed liveries.
// A missing or non-directory root yields an empty map.
func Scan(root string, log *zap.Logger) (livery.Map, error) {
	installed := livery.Map{}

	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("Installation root not found", zap.String("root", root))
		return installed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", root, err)
	}
	if !info.IsDir() {
		log.Debug("Installation root is not a directory", zap.String("root", root))
		return installed, nil
	}

	if err := walk(root, installed, log); err != nil {
		return nil, err
	}
	return installed, nil
}

func walk(dir string, installed livery.Map, log *zap.Logger) error {
	if strings.ToLower(filepath.Base(dir)) == LiveriesDir {
		return harvest(dir, installed, log)
	}

	subdirs, err := subdirectories(dir)
	if err != nil {
		return err
	}
	for _, sub := range subdirs {
		if err := walk(filepath.Join(dir, sub), installed, log); err != nil {
			return err
		}
	}
	return nil
}

// harvest records the vehicle type folders of a liveries folder and the
// livery folders inside each of them.
func harvest(dir string, installed livery.Map, log *zap.Logger) error {
	vehicles, err := subdirectories(dir)
	if err != nil {
		return err
	}

	for _, vehicle := range vehicles {
		installed.AddType(vehicle)

		vehicleDir := filepath.Join(dir, vehicle)
		ids, err := subdirectories(vehicleDir)
		if err != nil {
			return err
		}
		for _, id := range ids {
			installed.Add(vehicle, id)
			logger.Trace(log, "Found stock livery",
				zap.String("type", strings.ToLower(vehicle)),
				zap.String("livery", strings.ToLower(id)),
				zap.String("path", filepath.Join(vehicleDir, id)),
			)
		}
	}
	return nil
}

// subdirectories lists the names of the directories in dir, following links.
func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			names = append(names, entry.Name())
		case entry.Type()&os.ModeSymlink != 0:
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err == nil && info.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}
