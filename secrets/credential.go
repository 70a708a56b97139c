package secrets

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/juju/clock"
)

// CredentialLifetime is how long a service principal credential built by
// this package stays usable.
const CredentialLifetime = 2 * time.Hour

var _ azcore.TokenCredential = (*ExpiringCredential)(nil)

// ExpiringCredential is an azcore.TokenCredential that stops issuing tokens
// at a fixed time.
//
// Tokens issued before that have their ExpiresOn clamped to it.
type ExpiringCredential struct {
	cred      azcore.TokenCredential
	clock     clock.Clock
	expiresOn time.Time
}

// NewExpiringCredential wraps cred so it expires CredentialLifetime from now.
//
// clk defaults to clock.WallClock.
func NewExpiringCredential(cred azcore.TokenCredential, clk clock.Clock) *ExpiringCredential {
	if clk == nil {
		clk = clock.WallClock
	}
	return &ExpiringCredential{
		cred:      cred,
		clock:     clk,
		expiresOn: clk.Now().Add(CredentialLifetime),
	}
}

// ExpiresOn returns the time the credential expires.
func (c *ExpiringCredential) ExpiresOn() time.Time {
	return c.expiresOn
}

// Expired reports whether the credential has expired.
func (c *ExpiringCredential) Expired() bool {
	return !c.clock.Now().Before(c.expiresOn)
}

// GetToken implements azcore.TokenCredential.
func (c *ExpiringCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if c.Expired() {
		return azcore.AccessToken{}, ErrCredentialExpired
	}
	token, err := c.cred.GetToken(ctx, opts)
	if err != nil {
		return azcore.AccessToken{}, err
	}
	if token.ExpiresOn.IsZero() || token.ExpiresOn.After(c.expiresOn) {
		token.ExpiresOn = c.expiresOn
	}
	return token, nil
}
