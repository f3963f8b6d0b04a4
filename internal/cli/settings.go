package cli

import (
	"context"
	"fmt"
	"log"
)

// Settings lets the operator enter the remote endpoint and shared token.
// The token is read without echo.
func (a *App) Settings(ctx context.Context) {

	apiURL, err := GetSimpleText(a.reader, "Remote endpoint URL")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	apiToken, err := GetSecret("API token")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.settings.SaveEndpoint(ctx, apiURL, apiToken); err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Println("Settings saved")
}

// TestConnection runs the gateway health check with the saved settings.
func (a *App) TestConnection(ctx context.Context) {
	client, err := a.dialGateway(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		log.Printf("Connection failed: %s", err.Error())
		return
	}

	fmt.Println("Connection OK")
}
