package utils

import (
	"context"
	"fmt"

	"hoteltriggers/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients are the process-wide handles created once at startup.
type FirebaseClients struct {
	Messaging *messaging.Client
	Firestore *firestore.Client // nil unless the firestore backend is selected
}

// FirebaseInit initializes the Firebase App, its Messaging client and,
// when wantFirestore is set, the Firestore client.
func FirebaseInit(ctx context.Context, cfg config.Config, wantFirestore bool) (*FirebaseClients, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	msg, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	clients := &FirebaseClients{Messaging: msg}
	if wantFirestore {
		fs, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
		}
		clients.Firestore = fs
	}
	return clients, nil
}

// Close releases the Firestore connection if one was opened.
func (c *FirebaseClients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
