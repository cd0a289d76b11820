package config

import (
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/internal/utils/storage"
	"context"
	"fmt"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// NewFileStorage builds the image store selected by STORAGE_DRIVER. The local
// root is created here, so an unwritable UPLOAD_DIR fails startup.
func NewFileStorage(ctx context.Context) (storage.FileStorage, error) {
	switch driver := utils.GetConfig("STORAGE_DRIVER"); driver {
	case StorageLocal:
		return storage.NewLocalStorage(utils.GetConfig("UPLOAD_DIR"))
	case StorageS3:
		return storage.NewAwsS3(ctx, storage.AwsS3Config{
			Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
			Region:    utils.GetConfig("AWS_S3_REGION"),
			Prefix:    utils.GetConfig("AWS_S3_PREFIX"),
			AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
			SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
		})
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}
}
