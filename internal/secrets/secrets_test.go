package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSecretsAPI struct {
	values map[string]string
	calls  int
}

func (f *fakeSecretsAPI) GetSecret(_ context.Context, name string, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.calls++
	value, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, errors.New("SecretNotFound")
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: &value}}, nil
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, "development"))
	assert.Equal(t, SourceEnvironment, ResolveSource("", ""))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "production"))
	assert.Equal(t, SourceVault, ResolveSource(SourceVault, "development"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceEnvironment, "production"))
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("INQUIRY_TEST_SECRET", "s3cret")

	p, err := NewProvider(&ProviderConfig{Source: SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	value, err := p.GetSecret(context.Background(), "INQUIRY_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	_, err = p.GetSecret(context.Background(), "INQUIRY_TEST_MISSING")
	assert.Error(t, err)
}

func TestProvider_VaultRequiresName(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Source: SourceVault}, zap.NewNop())
	assert.Error(t, err)
}

func TestProvider_EnvOverridesVault(t *testing.T) {
	api := &fakeSecretsAPI{values: map[string]string{"jwt-secret": "from-vault"}}
	p := NewProviderWithFetcher(newVaultClient(api, &VaultConfig{}, zap.NewNop()), zap.NewNop())

	value, err := p.GetSecretOrEnv(context.Background(), "jwt-secret", "INQUIRY_TEST_JWT")
	require.NoError(t, err)
	assert.Equal(t, "from-vault", value)

	t.Setenv("INQUIRY_TEST_JWT", "from-env")
	value, err = p.GetSecretOrEnv(context.Background(), "jwt-secret", "INQUIRY_TEST_JWT")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)
}

func TestVaultClient_Cache(t *testing.T) {
	api := &fakeSecretsAPI{values: map[string]string{"admin-password": "pw"}}
	client := newVaultClient(api, &VaultConfig{CacheEnabled: true}, zap.NewNop())

	for i := 0; i < 3; i++ {
		value, err := client.GetSecret(context.Background(), "admin-password")
		require.NoError(t, err)
		assert.Equal(t, "pw", value)
	}
	assert.Equal(t, 1, api.calls)

	_, err := client.GetSecret(context.Background(), "missing")
	assert.Error(t, err)
}

func TestVaultClient_NoCache(t *testing.T) {
	api := &fakeSecretsAPI{values: map[string]string{"admin-password": "pw"}}
	client := newVaultClient(api, &VaultConfig{}, zap.NewNop())

	_, _ = client.GetSecret(context.Background(), "admin-password")
	_, _ = client.GetSecret(context.Background(), "admin-password")
	assert.Equal(t, 2, api.calls)
}
