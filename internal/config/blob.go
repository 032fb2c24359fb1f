package config

import (
	"os"
	"sync"
)

type BlobConfig struct {
	Token     string
	APIURL    string
	UploadDir string
}

var (
	blobConfig *BlobConfig
	blobOnce   sync.Once
)

func LoadBlobConfig() *BlobConfig {
	blobOnce.Do(func() {
		blobConfig = &BlobConfig{
			Token:     os.Getenv("BLOB_READ_WRITE_TOKEN"),
			APIURL:    envString("BLOB_API_URL", "https://blob.vercel-storage.com"),
			UploadDir: os.Getenv("UPLOAD_DIR"),
		}
	})
	return blobConfig
}
