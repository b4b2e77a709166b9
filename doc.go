// Package main provides the entry point for the TakaPay backend.
// It initializes and runs a web server using the Fiber framework that exposes
// the mobile-money JSON API: user accounts, transactions, admin configuration
// (feature flags, banners, payout wallets), media uploads and light social
// features. A Google Sheets spreadsheet acts as the system of record (one
// sheet tab per table) and Google Drive stores uploaded media.
package main
