package config

// ArchiveConfig configures the sent-message archive.
type ArchiveConfig struct {
	Mode      string // "off", "local" or "s3"
	LocalDir  string
	S3Bucket  string
	S3Prefix  string
	AWSRegion string
}

func loadArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Mode:      getEnv("ARCHIVE_MODE", "off"),
		LocalDir:  getEnv("ARCHIVE_DIR", "./archive"),
		S3Bucket:  getEnv("ARCHIVE_S3_BUCKET", ""),
		S3Prefix:  getEnv("ARCHIVE_S3_PREFIX", "messages"),
		AWSRegion: getEnv("ARCHIVE_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
	}
}
