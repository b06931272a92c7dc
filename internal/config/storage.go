package config

import (
	"fmt"
	"strings"
)

type StorageType string

const (
	StorageLocal StorageType = "local"
	StorageS3    StorageType = "s3"
	StorageGCS   StorageType = "gcs"
)

type LocalStorageConfig struct {
	UploadsPath       string   `mapstructure:"uploadsPath"`
	MaxFileSize       ByteSize `mapstructure:"maxFileSize"`
	AllowedExtensions []string `mapstructure:"allowedExtensions"`
}

// Allows reports whether filename ends with one of the allowed extensions. Multi part
// extensions such as .tar.gz are matched as a whole.
func (c LocalStorageConfig) Allows(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range c.AllowedExtensions {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

type S3StorageConfig struct {
	Bucket          string         `mapstructure:"bucket"`
	Region          string         `mapstructure:"region"`
	AccessKeyID     RedactedString `mapstructure:"accessKeyId"`
	SecretAccessKey RedactedString `mapstructure:"secretAccessKey"`
}

type GCSStorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	ProjectID       string `mapstructure:"projectId"`
	CredentialsFile string `mapstructure:"credentialsFile"`
}

type StorageConfig struct {
	Type  StorageType        `mapstructure:"type"`
	Local LocalStorageConfig `mapstructure:"local"`
	S3    S3StorageConfig    `mapstructure:"s3"`
	GCS   GCSStorageConfig   `mapstructure:"gcs"`
}

func (c StorageConfig) Validate(e RunningEnvironment, maxUploadSize ByteSize) error {
	switch c.Type {
	case StorageLocal:
		return c.validateLocal(maxUploadSize)
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("storage s3 bucket is not set")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("storage s3 region is not set")
		}
		if c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "" {
			return fmt.Errorf("storage s3 credentials are not set")
		}
		return nil
	case StorageGCS:
		if c.GCS.Bucket == "" {
			return fmt.Errorf("storage gcs bucket is not set")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage type %q (must be one of local, s3 or gcs)", string(c.Type))
	}
}

func (c StorageConfig) validateLocal(maxUploadSize ByteSize) error {
	if c.Local.UploadsPath == "" {
		return fmt.Errorf("storage local uploads path is not set")
	}
	if c.Local.MaxFileSize <= 0 {
		return fmt.Errorf("storage local max file size needs to be greater than 0")
	}
	if maxUploadSize > 0 && c.Local.MaxFileSize > maxUploadSize {
		return fmt.Errorf(
			"storage local max file size (%s) cannot exceed the app max upload size (%s)",
			c.Local.MaxFileSize,
			maxUploadSize,
		)
	}
	if len(c.Local.AllowedExtensions) == 0 {
		return fmt.Errorf("storage local allowed extensions cannot be empty")
	}
	for _, ext := range c.Local.AllowedExtensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("storage local allowed extension %q has to start with a dot", ext)
		}
	}
	return nil
}
