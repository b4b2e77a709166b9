package config

import (
	"github.com/takapay/takapay/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Log       logger.Log
	Webserver Webserver
	Admin     Admin  // populated from environment
	Google    Google // populated from environment
	Ping      string // PING_MESSAGE, echoed by /api/ping
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	BodyLimit      int    // max request body size in bytes (uploads)
}

// Admin holds the administrative credentials.
// Both fields come from the environment and may be empty; endpoints that
// need them answer 500 instead of the process refusing to start.
type Admin struct {
	Password  string `toml:"-" json:"-"` // ADMIN_PASSWORD
	JWTSecret string `toml:"-" json:"-"` // ADMIN_JWT_SECRET
}

// Google holds the service-account credentials and the ids of the backing
// spreadsheet and drive folder.
type Google struct {
	ProjectID     string `toml:"-"`            // GOOGLE_PROJECT_ID
	PrivateKeyID  string `toml:"-" json:"-"`   // GOOGLE_PRIVATE_KEY_ID
	PrivateKey    string `toml:"-" json:"-"`   // GOOGLE_PRIVATE_KEY
	ClientEmail   string `toml:"-"`            // GOOGLE_CLIENT_EMAIL
	ClientID      string `toml:"-"`            // GOOGLE_CLIENT_ID
	CertURL       string `toml:"-"`            // GOOGLE_CLIENT_X509_CERT_URL
	SheetsID      string `toml:"-"`            // VITE_GOOGLE_SHEETS_ID
	DriveFolderID string `toml:"-"`            // VITE_GOOGLE_DRIVE_FOLDER_ID
}
