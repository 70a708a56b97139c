// Package secrets fetches secrets from Azure Key Vault.
//
// A secret is fetched with either a managed identity (the default) or a
// service principal. Service principal credentials built by this package
// expire CredentialLifetime after they are created.
//
// GetSecret uses a Fetcher with the default settings.
// Use InitFromConfig to get a Fetcher and Auth from YAML configuration:
//
//	fetcher, auth := secrets.InitFromConfig(cfg.Secrets)
//	value, err := fetcher.GetSecret(ctx, cfg.Secrets.VaultURL, "db-password", auth)
//	if secrets.IsSecretNotFound(err) {
//		// handle missing secret
//	}
package secrets
