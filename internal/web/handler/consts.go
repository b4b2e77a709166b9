package handler

const (
	// RootPath is the root path of the API route group.
	RootPath = "/api"

	// ErrNilACDFatalLogMsg is used if the app, cfg or deps pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or deps is nil"
)
