package secrets

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ErrEmptyVaultURL is returned when the vault URL is empty.
var ErrEmptyVaultURL = errors.New("secrets: vault URL cannot be empty")

// ErrEmptySecretName is returned when the secret name is empty.
var ErrEmptySecretName = errors.New("secrets: secret name cannot be empty")

// ErrMissingCredential is wrapped by the errors Auth.Validate returns for
// every missing service principal field.
var ErrMissingCredential = errors.New("secrets: missing service principal credential")

// ErrCredentialExpired is returned by ExpiringCredential.GetToken once the
// credential outlived its lifetime.
var ErrCredentialExpired = errors.New("secrets: credential expired")

// IsSecretNotFound reports whether err is Key Vault's response to a secret
// that does not exist.
func IsSecretNotFound(err error) bool {
	var re *azcore.ResponseError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}
