package secrets_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/google/go-cmp/cmp"
	"github.com/juju/clock/testclock"

	"github.com/reddit/automate.go/errorsbp"
	"github.com/reddit/automate.go/secrets"
)

const testVault = "https://automate.vault.azure.net"

var testNow = time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC)

type fakeCredential struct {
	token  azcore.AccessToken
	err    error
	scopes [][]string
}

func (c *fakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.scopes = append(c.scopes, opts.Scopes)
	return c.token, c.err
}

type fakeClient struct {
	vaultURL string
	cred     azcore.TokenCredential
	value    *string
	err      error
	requests []string
}

func (c *fakeClient) GetSecret(_ context.Context, name string, version string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	c.requests = append(c.requests, name+"@"+version)
	var resp azsecrets.GetSecretResponse
	resp.Value = c.value
	return resp, c.err
}

type fixture struct {
	clock  *testclock.Clock
	lines  []string
	mi     *fakeCredential
	sp     *fakeCredential
	client *fakeClient

	miCalls    []string
	spCalls    [][3]string
	clientURLs []string
}

func newFixture() *fixture {
	value := "hunter2"
	return &fixture{
		clock:  testclock.NewClock(testNow),
		mi:     &fakeCredential{token: azcore.AccessToken{Token: "mi-token"}},
		sp:     &fakeCredential{token: azcore.AccessToken{Token: "sp-token"}},
		client: &fakeClient{value: &value},
	}
}

func (f *fixture) fetcher() *secrets.Fetcher {
	return &secrets.Fetcher{
		Clock:          f.clock,
		UserAssignedID: "user-assigned",
		Logger: func(msg string) {
			f.lines = append(f.lines, msg)
		},
		NewManagedIdentityCredential: func(id string) (azcore.TokenCredential, error) {
			f.miCalls = append(f.miCalls, id)
			return f.mi, nil
		},
		NewClientSecretCredential: func(tenantID, clientID, clientSecret string) (azcore.TokenCredential, error) {
			f.spCalls = append(f.spCalls, [3]string{tenantID, clientID, clientSecret})
			return f.sp, nil
		},
		NewClient: func(vaultURL string, cred azcore.TokenCredential) (secrets.Client, error) {
			f.clientURLs = append(f.clientURLs, vaultURL)
			f.client.vaultURL = vaultURL
			f.client.cred = cred
			return f.client, nil
		},
	}
}

func TestGetSecretManagedIdentity(t *testing.T) {
	f := newFixture()
	auth := secrets.DefaultAuth()
	// ignored with managed identity
	auth.TenantID = "tenant"

	value, err := f.fetcher().GetSecret(context.Background(), testVault, "db-password", auth)
	if err != nil {
		t.Fatalf("GetSecret returned error: %v", err)
	}
	if value != "hunter2" {
		t.Errorf("value got %q, want %q", value, "hunter2")
	}

	if diff := cmp.Diff(f.miCalls, []string{"user-assigned"}); diff != "" {
		t.Errorf("managed identity calls mismatch (-got +want):\n%s", diff)
	}
	if len(f.spCalls) != 0 {
		t.Errorf("service principal credential should not be built, got %v", f.spCalls)
	}
	if diff := cmp.Diff(f.mi.scopes, [][]string{{testVault + "/.default"}}); diff != "" {
		t.Errorf("token scopes mismatch (-got +want):\n%s", diff)
	}
	if f.client.cred != f.mi {
		t.Errorf("client should use the managed identity credential, got %T", f.client.cred)
	}
	if diff := cmp.Diff(f.client.requests, []string{"db-password@"}); diff != "" {
		t.Errorf("requests mismatch (-got +want):\n%s", diff)
	}
	if len(f.lines) != 1 || !strings.Contains(f.lines[0], "managed identity") {
		t.Errorf("Expected one log line naming managed identity, got %q", f.lines)
	}
}

func TestGetSecretServicePrincipal(t *testing.T) {
	f := newFixture()
	auth := secrets.ServicePrincipal("tenant", "client", "s3cret")

	value, err := f.fetcher().GetSecret(context.Background(), testVault, "db-password", auth)
	if err != nil {
		t.Fatalf("GetSecret returned error: %v", err)
	}
	if value != "hunter2" {
		t.Errorf("value got %q, want %q", value, "hunter2")
	}
	if len(f.miCalls) != 0 {
		t.Errorf("managed identity credential should not be built, got %v", f.miCalls)
	}
	if diff := cmp.Diff(f.spCalls, [][3]string{{"tenant", "client", "s3cret"}}); diff != "" {
		t.Errorf("service principal calls mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(f.clientURLs, []string{testVault}); diff != "" {
		t.Errorf("client urls mismatch (-got +want):\n%s", diff)
	}

	cred, ok := f.client.cred.(*secrets.ExpiringCredential)
	if !ok {
		t.Fatalf("Expected *ExpiringCredential, got %T", f.client.cred)
	}
	if want := testNow.Add(2 * time.Hour); !cred.ExpiresOn().Equal(want) {
		t.Errorf("ExpiresOn got %v, want %v", cred.ExpiresOn(), want)
	}

	if len(f.lines) != 1 {
		t.Fatalf("Expected one log line, got %q", f.lines)
	}
	if !strings.Contains(f.lines[0], "service principal") {
		t.Errorf("log line %q should name the service principal path", f.lines[0])
	}
	if strings.Contains(f.lines[0], "s3cret") {
		t.Errorf("log line %q leaks the client secret", f.lines[0])
	}
}

func TestGetSecretEmptyValue(t *testing.T) {
	f := newFixture()
	f.client.value = nil
	value, err := f.fetcher().GetSecret(context.Background(), testVault, "empty", secrets.DefaultAuth())
	if err != nil {
		t.Fatalf("GetSecret returned error: %v", err)
	}
	if value != "" {
		t.Errorf("value got %q, want empty", value)
	}
}

func TestGetSecretErrors(t *testing.T) {
	notFound := &azcore.ResponseError{
		ErrorCode:  "SecretNotFound",
		StatusCode: http.StatusNotFound,
		RawResponse: &http.Response{
			StatusCode: http.StatusNotFound,
			Request:    httptest.NewRequest(http.MethodGet, testVault+"/secrets/missing", nil),
		},
	}
	tokenErr := errors.New("imds unavailable")

	t.Run("empty-vault", func(t *testing.T) {
		f := newFixture()
		_, err := f.fetcher().GetSecret(context.Background(), "", "name", secrets.DefaultAuth())
		if !errors.Is(err, secrets.ErrEmptyVaultURL) {
			t.Errorf("Expected ErrEmptyVaultURL, got %v", err)
		}
	})

	t.Run("empty-name", func(t *testing.T) {
		f := newFixture()
		_, err := f.fetcher().GetSecret(context.Background(), testVault, "", secrets.DefaultAuth())
		if !errors.Is(err, secrets.ErrEmptySecretName) {
			t.Errorf("Expected ErrEmptySecretName, got %v", err)
		}
	})

	t.Run("missing-credentials", func(t *testing.T) {
		f := newFixture()
		_, err := f.fetcher().GetSecret(context.Background(), testVault, "name", secrets.ServicePrincipal("tenant", "", ""))
		if !errors.Is(err, secrets.ErrMissingCredential) {
			t.Errorf("Expected ErrMissingCredential, got %v", err)
		}
		if got := errorsbp.BatchSize(err); got != 2 {
			t.Errorf("Expected 2 missing fields, got %d: %v", got, err)
		}
		if len(f.spCalls) != 0 || len(f.lines) != 0 {
			t.Errorf("nothing should happen before validation passes, got %v %q", f.spCalls, f.lines)
		}
	})

	t.Run("token", func(t *testing.T) {
		f := newFixture()
		f.mi.err = tokenErr
		_, err := f.fetcher().GetSecret(context.Background(), testVault, "name", secrets.DefaultAuth())
		if !errors.Is(err, tokenErr) {
			t.Errorf("Expected token error, got %v", err)
		}
		if len(f.clientURLs) != 0 {
			t.Error("client should not be created when the token cannot be acquired")
		}
	})

	t.Run("not-found", func(t *testing.T) {
		f := newFixture()
		f.client.err = notFound
		_, err := f.fetcher().GetSecret(context.Background(), testVault, "missing", secrets.DefaultAuth())
		if err != error(notFound) {
			t.Errorf("Expected the provider error unchanged, got %v", err)
		}
		if !secrets.IsSecretNotFound(err) {
			t.Error("IsSecretNotFound should be true")
		}
		if len(f.client.requests) != 1 {
			t.Errorf("Expected exactly one request, got %v", f.client.requests)
		}
	})
}

func TestIsSecretNotFound(t *testing.T) {
	for _, c := range []struct {
		label string
		err   error
		want  bool
	}{
		{label: "nil"},
		{label: "plain", err: errors.New("boom")},
		{
			label: "forbidden",
			err:   &azcore.ResponseError{StatusCode: http.StatusForbidden},
		},
		{
			label: "not-found",
			err:   &azcore.ResponseError{StatusCode: http.StatusNotFound},
			want:  true,
		},
		{
			label: "wrapped",
			err:   errorsbp.PrefixError("fetch", &azcore.ResponseError{StatusCode: http.StatusNotFound}),
			want:  true,
		},
	} {
		t.Run(c.label, func(t *testing.T) {
			if got := secrets.IsSecretNotFound(c.err); got != c.want {
				t.Errorf("IsSecretNotFound got %v, want %v", got, c.want)
			}
		})
	}
}

func TestInitFromConfig(t *testing.T) {
	enabled, disabled := true, false
	for _, c := range []struct {
		label string
		cfg   secrets.Config
		want  secrets.Auth
	}{
		{
			label: "unset",
			cfg: secrets.Config{
				VaultURL:       testVault,
				UserAssignedID: "user-assigned",
			},
			want: secrets.DefaultAuth(),
		},
		{
			label: "unset-with-credentials",
			cfg: secrets.Config{
				VaultURL:     testVault,
				TenantID:     "tenant",
				ClientID:     "client",
				ClientSecret: "s3cret",
			},
			want: secrets.DefaultAuth(),
		},
		{
			label: "managed",
			cfg: secrets.Config{
				VaultURL:        testVault,
				ManagedIdentity: &enabled,
				TenantID:        "tenant",
			},
			want: secrets.DefaultAuth(),
		},
		{
			label: "service-principal",
			cfg: secrets.Config{
				VaultURL:        testVault,
				ManagedIdentity: &disabled,
				TenantID:        "tenant",
				ClientID:        "client",
				ClientSecret:    "s3cret",
			},
			want: secrets.ServicePrincipal("tenant", "client", "s3cret"),
		},
	} {
		t.Run(c.label, func(t *testing.T) {
			fetcher, auth := secrets.InitFromConfig(c.cfg)
			if diff := cmp.Diff(auth, c.want); diff != "" {
				t.Errorf("auth mismatch (-got +want):\n%s", diff)
			}
			if fetcher.UserAssignedID != c.cfg.UserAssignedID {
				t.Errorf("UserAssignedID got %q, want %q", fetcher.UserAssignedID, c.cfg.UserAssignedID)
			}
		})
	}
}
