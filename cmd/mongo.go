package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"musicalchairs/config"
	"musicalchairs/db"
	"musicalchairs/repository"

	"github.com/spf13/cobra"
)

var mongoCmd = &cobra.Command{
	Use:   "mongo",
	Short: "MongoDB connectivity check",
	Long:  `Connects to MongoDB, ensures the indexes exist and prints the number of metadata records.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("Mongo config: %s, database: %s\n", cfg.MongoURI, cfg.MongoDB)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		database, err := db.ConnectMongo(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer db.CloseMongo(ctx, database)
		fmt.Println("MongoDB connection successful.")

		if err := db.EnsureIndexes(ctx, database); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
		fmt.Println("Indexes ensured.")

		count, err := repository.NewMongoAudioRepository(database).Count(ctx)
		if err != nil {
			log.Fatalf("Failed to count metadata records: %v", err)
		}
		fmt.Printf("Metadata records: %d\n", count)
	},
}

func init() {
	rootCmd.AddCommand(mongoCmd)
}
