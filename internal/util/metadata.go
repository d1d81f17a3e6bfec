package util

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tasksheet/tasksheet-cli/internal/model"
)

const metadataFile = "metadata_data.json"

// GenerateMetadata walks the data directory and records each file's
// modification time, keyed by its relative path.
func GenerateMetadata(dir string) (map[string]string, error) {
	metadata := make(map[string]string)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("⚠️ Failed to access path: %s (%v)", path, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			log.Printf("⚠️ Failed to get relative path for: %s (%v)", path, err)
			return nil
		}

		metadata[relPath] = info.ModTime().Format(time.RFC3339)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to scan directory: %w", err)
	}

	return metadata, nil
}

func SaveMetadata(metadataPath string, metadata map[string]string) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("❌ Failed to marshal %s: %w", metadataFile, err)
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("❌ Failed to write %s: %w", metadataFile, err)
	}

	log.Printf("✅ %s updated!", metadataFile)
	return nil
}

func LoadMetadata(metadataPath string) (map[string]string, error) {
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("❌ Failed to read %s: %w", metadataFile, err)
	}

	var metadata map[string]string
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("❌ Failed to parse %s: %w", metadataFile, err)
	}

	return metadata, nil
}

// MetadataPath returns the local path of the sync metadata file.
func MetadataPath(cfg model.Config) string {
	return filepath.Join(cfg.DataDir, metadataFile)
}

func UploadMetadataToS3(s3Client *s3.Client, cfg model.Config) error {
	metadataPath := MetadataPath(cfg)
	s3Key := DataPrefix + metadataFile

	file, err := os.Open(metadataPath)
	if err != nil {
		return fmt.Errorf("❌ Failed to open %s: %w", metadataPath, err)
	}
	defer file.Close()

	log.Printf("🔄 Uploading %s to S3...", s3Key)

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(cfg.Sync.Bucket),
		Key:    aws.String(s3Key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("❌ Failed to upload %s to S3: %w", s3Key, err)
	}

	log.Printf("✅ %s uploaded to S3!", s3Key)
	return nil
}

func DownloadMetadataFromS3(s3Client *s3.Client, cfg model.Config) (map[string]string, error) {
	metadataPath := MetadataPath(cfg)
	s3Key := DataPrefix + metadataFile

	resp, err := s3Client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(cfg.Sync.Bucket),
		Key:    aws.String(s3Key),
	})
	if err != nil {
		if isNotFoundErr(err) {
			log.Printf("⚠️ No %s found on S3, returning empty metadata.", s3Key)
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("❌ Failed to download %s from S3: %w", s3Key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to read %s from S3: %w", s3Key, err)
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return nil, fmt.Errorf("❌ Failed to save %s: %w", metadataPath, err)
	}

	log.Printf("✅ %s downloaded from S3!", s3Key)

	metadata, err := LoadMetadata(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to load downloaded metadata: %w", err)
	}

	return metadata, nil
}

// DetectChanges compares local and remote metadata and lists the files
// the given source has newer (or exclusive) copies of. source is
// "local" for push or "s3" for pull.
func DetectChanges(localMeta, remoteMeta map[string]string, source string) []string {
	var filesToSync []string

	for file, remoteTimeStr := range remoteMeta {
		if file == metadataFile {
			continue
		}

		localTimeStr, exists := localMeta[file]
		if !exists {
			if source == "s3" {
				log.Printf("📌 File missing locally, adding to sync (pull): %s", file)
				filesToSync = append(filesToSync, file)
			}
			continue
		}

		remoteTime, err := time.Parse(time.RFC3339, remoteTimeStr)
		if err != nil {
			log.Printf("⚠️ Failed to parse remote timestamp for %s: %v", file, err)
			continue
		}

		localTime, err := time.Parse(time.RFC3339, localTimeStr)
		if err != nil {
			log.Printf("⚠️ Failed to parse local timestamp for %s: %v", file, err)
			continue
		}

		if source == "s3" && remoteTime.After(localTime.Add(1*time.Second)) {
			log.Printf("📌 Newer version on S3, adding to sync (pull): %s", file)
			filesToSync = append(filesToSync, file)
		}
		if source == "local" && localTime.After(remoteTime.Add(1*time.Second)) {
			log.Printf("📌 Newer version locally, adding to sync (push): %s", file)
			filesToSync = append(filesToSync, file)
		}
	}

	if source == "local" {
		for file := range localMeta {
			if file == metadataFile {
				continue
			}
			if _, exists := remoteMeta[file]; !exists {
				log.Printf("📌 File missing on S3, adding to sync (push): %s", file)
				filesToSync = append(filesToSync, file)
			}
		}
	}

	return filesToSync
}
