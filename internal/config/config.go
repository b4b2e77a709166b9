// Package config handles input from etc/*.toml files and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

// ReadConfig from config file and environment.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// load .env if present so container and dev setups behave the same
	_ = godotenv.Load()

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("TAKAPAY_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	readEnv(&c)

	return c, validate(&c)
}

// readEnv fills the secret-bearing parts of the config from the environment.
// All of these are optional at startup: handlers that need a missing value
// answer with a 500 and a descriptive message instead.
func readEnv(c *Config) {
	c.Admin.Password = os.Getenv("ADMIN_PASSWORD")
	c.Admin.JWTSecret = os.Getenv("ADMIN_JWT_SECRET")

	c.Google.ProjectID = os.Getenv("GOOGLE_PROJECT_ID")
	c.Google.PrivateKeyID = os.Getenv("GOOGLE_PRIVATE_KEY_ID")
	c.Google.PrivateKey = os.Getenv("GOOGLE_PRIVATE_KEY")
	c.Google.ClientEmail = os.Getenv("GOOGLE_CLIENT_EMAIL")
	c.Google.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	c.Google.CertURL = os.Getenv("GOOGLE_CLIENT_X509_CERT_URL")
	c.Google.SheetsID = os.Getenv("VITE_GOOGLE_SHEETS_ID")
	c.Google.DriveFolderID = os.Getenv("VITE_GOOGLE_DRIVE_FOLDER_ID")

	if msg := os.Getenv("PING_MESSAGE"); msg != "" {
		c.Ping = msg
	}
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings.
// Only the webserver part is hard-required; everything secret-bearing is
// checked lazily at the endpoints that use it.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	return nil
}
