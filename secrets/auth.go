package secrets

import (
	"fmt"

	"github.com/reddit/automate.go/errorsbp"
)

// Auth selects how GetSecret authenticates to Key Vault.
type Auth struct {
	// ManagedIdentity uses the identity of the host.
	// When true the service principal fields are ignored.
	ManagedIdentity bool

	// Service principal credentials, all required when ManagedIdentity is
	// false.
	TenantID     string
	ClientID     string
	ClientSecret string
}

// DefaultAuth returns the default Auth, which uses managed identity.
func DefaultAuth() Auth {
	return Auth{ManagedIdentity: true}
}

// ServicePrincipal returns an Auth using the given service principal.
func ServicePrincipal(tenantID, clientID, clientSecret string) Auth {
	return Auth{
		TenantID:     tenantID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}

// Method returns the name of the authentication path,
// "managed_identity" or "service_principal".
func (a Auth) Method() string {
	if a.ManagedIdentity {
		return methodManagedIdentity
	}
	return methodServicePrincipal
}

// Validate returns an errorsbp.Batch with one error wrapping
// ErrMissingCredential for every missing service principal field.
//
// It always returns nil for managed identity.
func (a Auth) Validate() error {
	if a.ManagedIdentity {
		return nil
	}
	var batch errorsbp.Batch
	for _, field := range []struct {
		name  string
		value string
	}{
		{"tenantID", a.TenantID},
		{"clientID", a.ClientID},
		{"clientSecret", a.ClientSecret},
	} {
		if field.value == "" {
			batch.Add(fmt.Errorf("%w: %s is empty", ErrMissingCredential, field.name))
		}
	}
	return batch.Compile()
}

// String never includes the client secret.
func (a Auth) String() string {
	if a.ManagedIdentity {
		return "managed identity"
	}
	return fmt.Sprintf("service principal (tenant %q, client %q)", a.TenantID, a.ClientID)
}
