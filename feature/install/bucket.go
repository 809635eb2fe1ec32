package install

import (
	"context"
	"fmt"
	"strings"

	"livery-audit/core/livery"
	"livery-audit/core/logger"
	"livery-audit/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ScanBucket lists the objects under prefix and returns the installed
// liveries they describe. prefix plays the role of a local root directory:
// its last segment is matched against LiveriesDir like any other folder.
// A missing bucket yields an empty map.
func ScanBucket(ctx context.Context, client storage.Client, bucket, prefix string, log *zap.Logger) (livery.Map, error) {
	installed := livery.Map{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		log.Debug("Installation bucket not found", zap.String("bucket", bucket))
		return installed, nil
	}

	root := strings.Trim(prefix, "/")
	listPrefix := ""
	if root != "" {
		listPrefix = root + "/"
	}
	// keys are matched from the root's own segment on, like a local walk
	strip := ""
	if i := strings.LastIndex(root, "/"); i >= 0 {
		strip = root[:i+1]
	}

	opts := minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("couldn't list %s%s/%s: %w", storage.Scheme, bucket, listPrefix, obj.Err)
		}
		addObject(installed, strings.TrimPrefix(obj.Key, strip), log)
	}

	return installed, nil
}

// addObject records the vehicle type and livery folders implied by key.
// Only the first liveries segment counts, so nested livery content is never
// mistaken for another liveries folder.
func addObject(installed livery.Map, key string, log *zap.Logger) {
	segments := strings.Split(key, "/")

	marker := -1
	for i, seg := range segments[:len(segments)-1] {
		if strings.ToLower(seg) == LiveriesDir {
			marker = i
			break
		}
	}
	if marker < 0 {
		return
	}

	// a vehicle folder needs something inside it
	vehicleAt, liveryAt := marker+1, marker+2
	if liveryAt >= len(segments) || segments[vehicleAt] == "" {
		return
	}
	vehicle := segments[vehicleAt]
	installed.AddType(vehicle)

	if liveryAt+1 >= len(segments) || segments[liveryAt] == "" {
		return
	}
	id := segments[liveryAt]
	if installed.Has(vehicle, id) {
		return
	}
	installed.Add(vehicle, id)
	logger.Trace(log, "Found stock livery",
		zap.String("type", strings.ToLower(vehicle)),
		zap.String("livery", strings.ToLower(id)),
		zap.String("key", key),
	)
}
