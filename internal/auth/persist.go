package auth

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Save merges the credentials into the env file at path, keeping every other key.
func Save(path string, creds Credentials) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		env = map[string]string{}
	}

	env["SPARTAN_TOKEN"] = creds.SpartanToken
	env["CLEARANCE_TOKEN"] = creds.ClearanceToken
	if creds.RefreshToken != "" {
		env["AZURE_REFRESH_TOKEN"] = creds.RefreshToken
	}

	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("Saved credentials", "file", path)
	return nil
}
