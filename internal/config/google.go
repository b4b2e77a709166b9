package config

import (
	"encoding/json"
	"strings"
)

// serviceAccountKey mirrors the JSON key file layout Google issues for
// service accounts. We rebuild it from individual environment variables so
// deployments never need the key file on disk.
type serviceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// CredentialsJSON rebuilds the service-account key file from the environment
// fields. PEM newlines usually arrive escaped ("\n") from env files, so they
// are unescaped here.
func (g Google) CredentialsJSON() ([]byte, error) {
	if g.ProjectID == "" || g.PrivateKey == "" || g.ClientEmail == "" {
		return nil, ErrGoogleCredsIncomplete
	}

	key := serviceAccountKey{
		Type:                    "service_account",
		ProjectID:               g.ProjectID,
		PrivateKeyID:            g.PrivateKeyID,
		PrivateKey:              strings.ReplaceAll(g.PrivateKey, `\n`, "\n"),
		ClientEmail:             g.ClientEmail,
		ClientID:                g.ClientID,
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientX509CertURL:       g.CertURL,
	}

	return json.Marshal(key) //nolint: wrapcheck
}
