// Command walletd serves the wallet client over a local HTTP API. Settings
// come from the environment or a .env file in the working directory.
package main

import (
	"log"

	"wallet_client/internal/app"
)

func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	app.BuildWalletLayer()
	if err := app.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
