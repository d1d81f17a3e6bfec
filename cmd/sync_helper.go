package cmd

import (
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/util"
)

// syncPlan is the reconciliation work a push or pull would perform:
// the metadata on both sides and the files whose timestamps differ.
type syncPlan struct {
	client *s3.Client
	local  map[string]string
	remote map[string]string
	files  []string
}

// planSync compares the data directory against the bucket without
// transferring any data files. For a push the local side is read fresh
// from disk; for a pull the stored metadata from the last sync is used.
func planSync(config model.Config, direction string) (*syncPlan, error) {
	if !config.Sync.Enable {
		return nil, fmt.Errorf("❌ Sync is disabled, enable it with `tasksheet config`")
	}

	s3Client, err := util.NewS3Client(config)
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to initialize S3 client: %w", err)
	}

	var localMetadata map[string]string
	switch direction {
	case "push":
		localMetadata, err = util.GenerateMetadata(config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to generate metadata: %w", err)
		}
	case "pull":
		localMetadata, _ = util.LoadMetadata(util.MetadataPath(config))
	default:
		return nil, fmt.Errorf("❌ Unknown sync direction: %s", direction)
	}

	remoteMetadata, err := util.DownloadMetadataFromS3(s3Client, config)
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to download metadata from S3: %w", err)
	}

	source := "local"
	if direction == "pull" {
		source = "s3"
	}

	return &syncPlan{
		client: s3Client,
		local:  localMetadata,
		remote: remoteMetadata,
		files:  util.DetectChanges(localMetadata, remoteMetadata, source),
	}, nil
}

// SyncWithS3 executes a push or pull plan and returns the files it
// actually transferred.
func SyncWithS3(config model.Config, direction string) ([]string, error) {
	plan, err := planSync(config, direction)
	if err != nil {
		return nil, err
	}

	if len(plan.files) > 0 {
		if err := util.SyncFilesToS3(plan.client, config, direction, plan.files); err != nil {
			return nil, fmt.Errorf("❌ Sync failed: %w", err)
		}
	}

	switch direction {
	case "push":
		if err := util.SaveMetadata(util.MetadataPath(config), plan.local); err != nil {
			return nil, fmt.Errorf("❌ Failed to save metadata: %w", err)
		}
		if err := util.UploadMetadataToS3(plan.client, config); err != nil {
			return nil, fmt.Errorf("❌ Failed to upload metadata: %w", err)
		}
	case "pull":
		if err := util.SaveMetadata(util.MetadataPath(config), plan.remote); err != nil {
			return nil, fmt.Errorf("❌ Failed to save metadata: %w", err)
		}
	}

	return plan.files, nil
}

// ShowSyncStatus reports pending work in both directions, comparing the
// bucket against the data directory as it is on disk right now.
func ShowSyncStatus(config model.Config) error {
	if !config.Sync.Enable {
		return fmt.Errorf("❌ Sync is disabled, enable it with `tasksheet config`")
	}

	s3Client, err := util.NewS3Client(config)
	if err != nil {
		return fmt.Errorf("❌ Failed to initialize S3 client: %w", err)
	}

	localMetadata, err := util.GenerateMetadata(config.DataDir)
	if err != nil {
		return fmt.Errorf("❌ Failed to generate metadata: %w", err)
	}

	remoteMetadata, err := util.DownloadMetadataFromS3(s3Client, config)
	if err != nil {
		return err
	}

	pull := util.DetectChanges(localMetadata, remoteMetadata, "s3")
	push := util.DetectChanges(localMetadata, remoteMetadata, "local")

	if len(pull) == 0 && len(push) == 0 {
		log.Println("✅ Everything is up-to-date.")
		return nil
	}

	if len(pull) > 0 {
		log.Printf("📌 %d file(s) newer on S3 (would pull):", len(pull))
		for _, file := range pull {
			log.Println("   -", file)
		}
	}
	if len(push) > 0 {
		log.Printf("📌 %d file(s) newer locally (would push):", len(push))
		for _, file := range push {
			log.Println("   -", file)
		}
	}

	return nil
}
