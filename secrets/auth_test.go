package secrets_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reddit/automate.go/errorsbp"
	"github.com/reddit/automate.go/secrets"
)

func TestAuthValidate(t *testing.T) {
	for _, c := range []struct {
		label   string
		auth    secrets.Auth
		missing []string
	}{
		{
			label: "managed-identity",
			auth:  secrets.DefaultAuth(),
		},
		{
			label: "service-principal",
			auth:  secrets.ServicePrincipal("tenant", "client", "secret"),
		},
		{
			label:   "empty",
			auth:    secrets.Auth{},
			missing: []string{"tenantID", "clientID", "clientSecret"},
		},
		{
			label:   "no-secret",
			auth:    secrets.ServicePrincipal("tenant", "client", ""),
			missing: []string{"clientSecret"},
		},
	} {
		t.Run(c.label, func(t *testing.T) {
			err := c.auth.Validate()
			if got := errorsbp.BatchSize(err); got != len(c.missing) {
				t.Fatalf("Expected %d error(s), got %d: %v", len(c.missing), got, err)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, secrets.ErrMissingCredential) {
				t.Errorf("Expected %v to wrap ErrMissingCredential", err)
			}
			for _, field := range c.missing {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("Expected %q to name %q", err, field)
				}
			}
		})
	}
}

func TestAuthString(t *testing.T) {
	auth := secrets.ServicePrincipal("tenant", "client", "s3cret")
	if strings.Contains(auth.String(), "s3cret") {
		t.Errorf("String %q leaks the client secret", auth)
	}
	if got := auth.Method(); got != "service_principal" {
		t.Errorf("Method got %q", got)
	}
	if got := secrets.DefaultAuth().Method(); got != "managed_identity" {
		t.Errorf("Method got %q", got)
	}
}
