package secrets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap/zapcore"

	"github.com/reddit/automate.go/log"
)

const (
	promNamespace = "secrets"

	authLabel    = "auth"
	successLabel = "success"

	methodManagedIdentity  = "managed_identity"
	methodServicePrincipal = "service_principal"
)

var fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: promNamespace,
	Name:      "fetch_total",
	Help:      "Total number of Key Vault secret fetches",
}, []string{authLabel, successLabel})

// Client is the part of *azsecrets.Client used by Fetcher.
type Client interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

var _ Client = (*azsecrets.Client)(nil)

// Fetcher fetches secrets from Key Vault.
//
// The zero value is ready to use with the real azure SDK.
// The function fields exist so tests can substitute fakes.
type Fetcher struct {
	// Clock is used to expire service principal credentials.
	// Default is clock.WallClock.
	Clock clock.Clock

	// Logger receives one line per GetSecret call naming the authentication
	// path. Default logs at info level to log.C of the call's context.
	Logger log.Wrapper

	// UserAssignedID selects a user-assigned managed identity by client ID.
	// Empty means the system-assigned identity.
	UserAssignedID string

	// Optional overrides of the azure SDK constructors.
	NewManagedIdentityCredential func(userAssignedID string) (azcore.TokenCredential, error)
	NewClientSecretCredential    func(tenantID, clientID, clientSecret string) (azcore.TokenCredential, error)
	NewClient                    func(vaultURL string, cred azcore.TokenCredential) (Client, error)
}

// DefaultFetcher is the Fetcher used by GetSecret.
var DefaultFetcher = new(Fetcher)

// GetSecret fetches the latest version of secretName from the vault at
// vaultURL using DefaultFetcher.
func GetSecret(ctx context.Context, vaultURL, secretName string, auth Auth) (string, error) {
	return DefaultFetcher.GetSecret(ctx, vaultURL, secretName, auth)
}

// GetSecret fetches the latest version of secretName from the vault at
// vaultURL.
//
// With managed identity a token is acquired before the secret is requested,
// so authentication problems are reported as such.
// Errors from Key Vault are returned unchanged, use IsSecretNotFound to check
// for a missing secret.
// A secret without a value is returned as an empty string.
func (f *Fetcher) GetSecret(ctx context.Context, vaultURL, secretName string, auth Auth) (value string, err error) {
	if vaultURL == "" {
		return "", ErrEmptyVaultURL
	}
	if secretName == "" {
		return "", ErrEmptySecretName
	}
	if err := auth.Validate(); err != nil {
		return "", err
	}

	method := auth.Method()
	defer func() {
		fetchTotal.With(prometheus.Labels{
			authLabel:    method,
			successLabel: strconv.FormatBool(err == nil),
		}).Inc()
	}()

	var cred azcore.TokenCredential
	if auth.ManagedIdentity {
		f.logger(ctx).Log(fmt.Sprintf("secrets: fetching %q from %s with managed identity", secretName, vaultURL))
		cred, err = f.managedIdentity(ctx, vaultURL)
	} else {
		f.logger(ctx).Log(fmt.Sprintf(
			"secrets: fetching %q from %s with service principal %q of tenant %q",
			secretName,
			vaultURL,
			auth.ClientID,
			auth.TenantID,
		))
		cred, err = f.servicePrincipal(auth)
	}
	if err != nil {
		return "", err
	}

	client, err := f.newClient(vaultURL, cred)
	if err != nil {
		return "", err
	}
	resp, err := client.GetSecret(ctx, secretName, "", nil)
	if err != nil {
		return "", err
	}
	if resp.Value == nil {
		return "", nil
	}
	return *resp.Value, nil
}

// Scope returns the token scope of the vault at vaultURL.
func Scope(vaultURL string) string {
	return strings.TrimSuffix(vaultURL, "/") + "/.default"
}

func (f *Fetcher) managedIdentity(ctx context.Context, vaultURL string) (azcore.TokenCredential, error) {
	cred, err := f.newManagedIdentityCredential()
	if err != nil {
		return nil, err
	}
	if _, err := cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{Scope(vaultURL)},
	}); err != nil {
		return nil, err
	}
	return cred, nil
}

func (f *Fetcher) servicePrincipal(auth Auth) (azcore.TokenCredential, error) {
	newCred := f.NewClientSecretCredential
	if newCred == nil {
		newCred = defaultClientSecretCredential
	}
	cred, err := newCred(auth.TenantID, auth.ClientID, auth.ClientSecret)
	if err != nil {
		return nil, err
	}
	return NewExpiringCredential(cred, f.clock()), nil
}

func (f *Fetcher) newManagedIdentityCredential() (azcore.TokenCredential, error) {
	if f.NewManagedIdentityCredential != nil {
		return f.NewManagedIdentityCredential(f.UserAssignedID)
	}
	return defaultManagedIdentityCredential(f.UserAssignedID)
}

func (f *Fetcher) newClient(vaultURL string, cred azcore.TokenCredential) (Client, error) {
	if f.NewClient != nil {
		return f.NewClient(vaultURL, cred)
	}
	return azsecrets.NewClient(vaultURL, cred, nil)
}

func (f *Fetcher) clock() clock.Clock {
	if f.Clock == nil {
		return clock.WallClock
	}
	return f.Clock
}

func (f *Fetcher) logger(ctx context.Context) log.Wrapper {
	if f.Logger == nil {
		return log.ContextWrapper(ctx, zapcore.InfoLevel)
	}
	return f.Logger
}

func defaultManagedIdentityCredential(userAssignedID string) (azcore.TokenCredential, error) {
	var opts azidentity.ManagedIdentityCredentialOptions
	if userAssignedID != "" {
		opts.ID = azidentity.ClientID(userAssignedID)
	}
	return azidentity.NewManagedIdentityCredential(&opts)
}

func defaultClientSecretCredential(tenantID, clientID, clientSecret string) (azcore.TokenCredential, error) {
	return azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
}
