package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"cachesalvage/api"
	"cachesalvage/database"
	"cachesalvage/jobs"
	"cachesalvage/operator"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	jobManager := jobs.NewManager()
	sessions := operator.NewStore()

	dbConnStr := os.Getenv("DATABASE_URL")
	db, err := database.InitDB(dbConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	s3Bucket := os.Getenv("S3_EXPORT_BUCKET")
	if s3Bucket == "" {
		log.Println("Warning: S3_EXPORT_BUCKET not set, using default")
		s3Bucket = "cachesalvage"
	}

	server := api.NewServer(db, jobManager, sessions, s3Bucket)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8787"
	}

	fmt.Printf("cachesalvage backend starting on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, server.Handler()))
}
