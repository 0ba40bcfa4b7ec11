package config

import "os"

const defaultOutputDir = "output"

// StoreConfig controls where finished videos are kept after the response
// is served. S3Bucket empty means the local output directory is used.
type StoreConfig struct {
	OutputDir string
	S3Bucket  string
	S3Region  string
}

func GetStoreConfig() (*StoreConfig, error) {
	return &StoreConfig{
		OutputDir: envOr("OUTPUT_DIR", defaultOutputDir),
		S3Bucket:  os.Getenv("S3_BUCKET"),
		S3Region:  envOr("S3_REGION", "us-east-1"),
	}, nil
}
