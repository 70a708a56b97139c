package secrets

// Config is the confuration struct for the secrets package.
//
// Can be deserialized from YAML.
type Config struct {
	// VaultURL is the Key Vault to fetch secrets from,
	// e.g. https://myvault.vault.azure.net.
	VaultURL string `yaml:"vaultURL"`

	// ManagedIdentity selects managed identity authentication.
	// Unset means true, set it to false to use the service principal fields
	// below.
	ManagedIdentity *bool `yaml:"managedIdentity"`

	TenantID     string `yaml:"tenantID"`
	ClientID     string `yaml:"clientID"`
	ClientSecret string `yaml:"clientSecret"`

	// UserAssignedID is the client ID of a user-assigned managed identity.
	UserAssignedID string `yaml:"userAssignedID"`
}

// UseManagedIdentity reports whether cfg authenticates with managed identity.
func (cfg Config) UseManagedIdentity() bool {
	return cfg.ManagedIdentity == nil || *cfg.ManagedIdentity
}

// InitFromConfig returns a *Fetcher and the Auth described by cfg.
func InitFromConfig(cfg Config) (*Fetcher, Auth) {
	auth := DefaultAuth()
	if !cfg.UseManagedIdentity() {
		auth = ServicePrincipal(cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
	}
	return &Fetcher{
		UserAssignedID: cfg.UserAssignedID,
	}, auth
}
