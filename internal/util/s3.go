package util

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/tasksheet/tasksheet-cli/internal/model"
)

// DataPrefix is the S3 key prefix under which the data directory lives.
const DataPrefix = "data/"

func NewS3Client(cfg model.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithSharedConfigProfile(cfg.Sync.AWSProfile),
		awsconfig.WithRegion(cfg.Sync.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	return s3.NewFromConfig(awsCfg), nil
}

func isNotFoundErr(err error) bool {
	var notFound *types.NoSuchKey
	return errors.As(err, &notFound)
}

// UploadToS3 uploads a local file to the bucket under s3Key.
func UploadToS3(s3Client *s3.Client, bucket, filePath, s3Key string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("❌ Failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(s3Key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("❌ Failed to upload %s to S3: %w", s3Key, err)
	}

	log.Printf("✅ Uploaded %s to S3", s3Key)
	return nil
}

// DownloadFromS3 fetches s3Key from the bucket into localPath.
func DownloadFromS3(s3Client *s3.Client, bucket, s3Key, localPath string) error {
	resp, err := s3Client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(s3Key),
	})
	if err != nil {
		return fmt.Errorf("❌ Failed to download %s from S3: %w", s3Key, err)
	}
	defer resp.Body.Close()

	localDir := filepath.Dir(localPath)
	if err := os.MkdirAll(localDir, os.ModePerm); err != nil {
		return fmt.Errorf("❌ Failed to create directory %s: %w", localDir, err)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("❌ Failed to create file %s: %w", localPath, err)
	}
	defer file.Close()

	if _, err := file.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("❌ Failed to write file %s: %w", localPath, err)
	}

	log.Printf("✅ Downloaded %s from S3", s3Key)
	return nil
}

// SyncFilesToS3 pushes or pulls the listed data files. direction is
// "push" or "pull"; paths are relative to the data directory.
func SyncFilesToS3(s3Client *s3.Client, cfg model.Config, direction string, files []string) error {
	for _, file := range files {
		localPath := filepath.Join(cfg.DataDir, file)
		s3Key := DataPrefix + file

		switch direction {
		case "push":
			if err := UploadToS3(s3Client, cfg.Sync.Bucket, localPath, s3Key); err != nil {
				return err
			}
		case "pull":
			if err := DownloadFromS3(s3Client, cfg.Sync.Bucket, s3Key, localPath); err != nil {
				return err
			}
		default:
			return fmt.Errorf("❌ Invalid sync direction: %s", direction)
		}
	}
	return nil
}
