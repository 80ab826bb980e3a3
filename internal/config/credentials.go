package config

import (
	"fmt"
	"os"

	"fivver/internal/ports"
)

// LoadCredentials reads the marketplace credentials from the
// environment. Both variables are required; a missing one is fatal
// before the event loop starts.
func LoadCredentials() (ports.Credentials, error) {
	username := os.Getenv("FIVVER_USERNAME")
	if username == "" {
		return ports.Credentials{}, fmt.Errorf("FIVVER_USERNAME environment variable is not set")
	}

	password := os.Getenv("FIVVER_PASSWORD")
	if password == "" {
		return ports.Credentials{}, fmt.Errorf("FIVVER_PASSWORD environment variable is not set")
	}

	return ports.Credentials{Password: password, Username: username}, nil
}
