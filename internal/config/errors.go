package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrGoogleCredsIncomplete is returned when the service-account fields
	// needed to talk to Google Sheets/Drive are missing from the environment.
	ErrGoogleCredsIncomplete = errors.New("google service-account credentials are incomplete")

	// ErrSheetsIDMissing is returned when VITE_GOOGLE_SHEETS_ID is not set.
	ErrSheetsIDMissing = errors.New("VITE_GOOGLE_SHEETS_ID is not set")

	// ErrDriveFolderIDMissing is returned when VITE_GOOGLE_DRIVE_FOLDER_ID is not set.
	ErrDriveFolderIDMissing = errors.New("VITE_GOOGLE_DRIVE_FOLDER_ID is not set")
)
