package db

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

func connectTimeout() time.Duration {
	if v := os.Getenv("MONGODB_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("Ignoring invalid MONGODB_TIMEOUT_SECONDS=%q", v)
	}
	return 30 * time.Second
}

func ConnectDB() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Fatal("MONGODB_URI not set")
	}

	timeout := connectTimeout()
	clientOptions := options.Client().
		ApplyURI(uri).
		SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetTimeout(timeout).
		SetConnectTimeout(timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), timeout/2)
	defer pingCancel()

	if err = Client.Ping(pingCtx, nil); err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}

	log.Println("Connected to MongoDB!")
}

func GetDB() *mongo.Database {
	if Client == nil {
		log.Fatal("MongoDB client not initialized")
	}
	name := os.Getenv("MONGODB_DATABASE")
	if name == "" {
		name = "color_rush"
	}
	return Client.Database(name)
}
