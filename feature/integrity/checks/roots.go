package checks

import (
	"context"
	"errors"
	"fmt"
	"os"

	"livery-audit/core/storage"
	"livery-audit/feature/install"

	"github.com/minio/minio-go/v7"
)

// Root statuses.
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// RootReport is the health of one installation root.
type RootReport struct {
	Root   string `json:"root"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CheckRoots checks every root and reports whether all of them are usable.
func CheckRoots(ctx context.Context, roots []install.Root, client storage.Client) ([]RootReport, bool) {
	reports := make([]RootReport, 0, len(roots))
	healthy := true
	for _, root := range roots {
		report := CheckRoot(ctx, root, client)
		if report.Status != StatusOK {
			healthy = false
		}
		reports = append(reports, report)
	}
	return reports, healthy
}

// CheckRoot checks that root exists and can be listed.
func CheckRoot(ctx context.Context, root install.Root, client storage.Client) RootReport {
	report := RootReport{Root: root.String(), Status: StatusOK}

	var err error
	if root.IsBucket() {
		report.Status, err = checkBucket(ctx, root, client)
	} else {
		report.Status, err = checkDir(root.Path)
	}
	if err != nil {
		report.Error = err.Error()
	}
	return report
}

func checkDir(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return StatusMissing, nil
	}
	if err != nil {
		return StatusError, err
	}
	if !info.IsDir() {
		return StatusMissing, fmt.Errorf("%s is not a directory", path)
	}

	if _, err := os.ReadDir(path); err != nil {
		return StatusError, err
	}
	return StatusOK, nil
}

func checkBucket(ctx context.Context, root install.Root, client storage.Client) (string, error) {
	if client == nil {
		return StatusError, install.ErrNoStorage
	}

	exists, err := client.BucketExists(ctx, root.Bucket)
	if err != nil {
		return StatusError, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return StatusMissing, nil
	}

	prefix := root.Prefix
	if prefix != "" {
		prefix += "/"
	}
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
		MaxKeys:   1,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for obj := range client.ListObjects(ctx, root.Bucket, opts) {
		if obj.Err != nil {
			return StatusError, obj.Err
		}
		return StatusOK, nil
	}
	return StatusEmpty, nil
}
