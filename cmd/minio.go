package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"musicalchairs/config"
	"musicalchairs/logger"
	"musicalchairs/storage"

	"github.com/spf13/cobra"
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "MinIO connectivity check",
	Long:  `Connects to the blob store, creating the bucket if it does not exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.Init(logger.Config{Level: cfg.LogLevel})
		fmt.Printf("MinIO config: %s, bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		blobStore, err := storage.NewBlobStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize blob store: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := blobStore.Ping(ctx); err != nil {
			log.Fatalf("MinIO ping failed: %v", err)
		}
		fmt.Println("MinIO connection successful.")
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
}
