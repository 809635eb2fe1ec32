package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"livery-audit/core/storage/mocks"
	"livery-audit/feature/install"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckRoot_Local(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game.exe")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name   string
		path   string
		status string
	}{
		{"Directory", dir, StatusOK},
		{"Missing", filepath.Join(dir, "absent"), StatusMissing},
		{"File", file, StatusMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := CheckRoot(context.Background(), install.Root{Path: tt.path}, nil)
			assert.Equal(t, tt.status, report.Status)
			assert.Equal(t, tt.path, report.Root)
		})
	}
}

func TestCheckRoot_Bucket(t *testing.T) {
	ctx := context.Background()
	root := install.Root{Bucket: "mirror", Prefix: "dcs"}
	opts := minio.ListObjectsOptions{Prefix: "dcs/", MaxKeys: 1}

	t.Run("OK", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "mirror").Return(true, nil)
		client.On("ListObjects", mock.Anything, "mirror", opts).
			Return(mocks.Objects(minio.ObjectInfo{Key: "dcs/Bazar/"}))

		report := CheckRoot(ctx, root, client)

		assert.Equal(t, StatusOK, report.Status)
		assert.Equal(t, "s3://mirror/dcs", report.Root)
		client.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "mirror").Return(true, nil)
		client.On("ListObjects", mock.Anything, "mirror", opts).Return(mocks.Objects())

		assert.Equal(t, StatusEmpty, CheckRoot(ctx, root, client).Status)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "mirror").Return(false, nil)

		assert.Equal(t, StatusMissing, CheckRoot(ctx, root, client).Status)
	})

	t.Run("ListError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "mirror").Return(true, nil)
		client.On("ListObjects", mock.Anything, "mirror", opts).
			Return(mocks.Objects(minio.ObjectInfo{Err: assert.AnError}))

		report := CheckRoot(ctx, root, client)

		assert.Equal(t, StatusError, report.Status)
		assert.Equal(t, assert.AnError.Error(), report.Error)
	})

	t.Run("NoClient", func(t *testing.T) {
		report := CheckRoot(ctx, root, nil)

		assert.Equal(t, StatusError, report.Status)
		assert.Equal(t, install.ErrNoStorage.Error(), report.Error)
	})
}

func TestCheckRoots(t *testing.T) {
	dir := t.TempDir()

	reports, healthy := CheckRoots(context.Background(), []install.Root{{Path: dir}}, nil)
	assert.True(t, healthy)
	assert.Len(t, reports, 1)

	reports, healthy = CheckRoots(context.Background(), []install.Root{{Path: dir}, {Path: filepath.Join(dir, "absent")}}, nil)
	assert.False(t, healthy)
	assert.Equal(t, StatusMissing, reports[1].Status)
}
