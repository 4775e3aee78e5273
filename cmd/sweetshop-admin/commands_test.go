package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/mocks"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/ports"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/testutil"
)

var adminCreds = domainauth.Credentials{Email: "admin@example.com", Password: "pw"}

// runCLI executes the root command against a mocked API and returns stdout.
func runCLI(t *testing.T, api ports.ShopAPI, args ...string) (string, error) {
	t.Helper()
	cc := &commandContext{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewAPI: func(cfg config.ShopAPIConfig, _ *slog.Logger) (ports.ShopAPI, error) {
			assert.Equal(t, "http://api.local/api", cfg.BaseURL)
			return api, nil
		},
	}
	root := newRootCmd(cc)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{
		"--api-url", "http://api.local/api/",
		"--email", adminCreds.Email,
		"--password", adminCreds.Password,
	}, args...))
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func newMockAPI(t *testing.T) *mocks.MockShopAPI {
	t.Helper()
	api := mocks.NewMockShopAPI(gomock.NewController(t))
	return api
}

func expectLogin(api *mocks.MockShopAPI) {
	api.EXPECT().Login(gomock.Any(), adminCreds).Return("admin-token", nil)
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sweets:
  - name: Kaju Katli
    category: Indian
    price: 25
    quantity: 40
  - name: "  Rasgulla "
    category: Bengali
    price: 8
    quantity: 12
`), 0o600))

	api := newMockAPI(t)
	expectLogin(api)
	api.EXPECT().CreateSweets(gomock.Any(), "admin-token", []model.SweetInput{
		{Name: "Kaju Katli", Category: "Indian", Price: 25, Quantity: 40},
		{Name: "Rasgulla", Category: "Bengali", Price: 8, Quantity: 12},
	}).Return([]model.Sweet{
		{ID: "s1", Name: "Kaju Katli", Category: "Indian", Price: 25, Quantity: 40},
		{ID: "s2", Name: "Rasgulla", Category: "Bengali", Price: 8, Quantity: 12},
	}, nil)

	out, err := runCLI(t, api, "seed", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created 2 sweets")
	assert.Contains(t, out, "Rasgulla")
	assert.Contains(t, out, "25.00")
}

func TestSeed_InvalidEntryMakesNoCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: Ladoo\n  category: ''\n  price: 5\n  quantity: 1\n"), 0o600))

	api := newMockAPI(t)
	expectLogin(api)

	_, err := runCLI(t, api, "seed", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category is required")
}

func TestSeed_RequiresFile(t *testing.T) {
	_, err := runCLI(t, newMockAPI(t), "seed")
	require.Error(t, err)
}

func TestParseSeed(t *testing.T) {
	list, err := parseSeed([]byte("- name: Barfi\n  category: Indian\n  price: 12.5\n  quantity: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []model.SweetInput{{Name: "Barfi", Category: "Indian", Price: 12.5, Quantity: 3}}, list)

	_, err = parseSeed([]byte("sweets: []\n"))
	require.Error(t, err)

	_, err = parseSeed([]byte("{not yaml"))
	require.Error(t, err)
}

func TestList(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     []string
		dontWant []string
	}{
		{name: "all", args: []string{"list"}, want: []string{"Kaju Katli", "Chocolate Fudge", "Rasgulla"}},
		{name: "by name", args: []string{"list", "--name", "KAJU"}, want: []string{"Kaju Katli"}, dontWant: []string{"Rasgulla"}},
		{name: "by category", args: []string{"list", "--category", "bengali"}, want: []string{"Rasgulla"}, dontWant: []string{"Kaju Katli"}},
		{name: "name and category miss", args: []string{"list", "--name", "kaju", "--category", "Western"}, dontWant: []string{"Kaju Katli", "Chocolate Fudge"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newMockAPI(t)
			expectLogin(api)
			api.EXPECT().ListSweets(gomock.Any(), "admin-token").Return(testutil.SampleSweets(), nil)

			out, err := runCLI(t, api, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "NAME")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.dontWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestRestock(t *testing.T) {
	api := newMockAPI(t)
	expectLogin(api)
	api.EXPECT().Restock(gomock.Any(), "admin-token", "s2", 25).Return(nil)

	out, err := runCLI(t, api, "restock", "s2", "--amount", "25")
	require.NoError(t, err)
	assert.Equal(t, "restocked s2 by 25\n", out)
}

func TestRestock_DefaultAmountAndValidation(t *testing.T) {
	api := newMockAPI(t)
	expectLogin(api)
	api.EXPECT().Restock(gomock.Any(), "admin-token", "s1", defaultRestockAmount).Return(nil)

	_, err := runCLI(t, api, "restock", "s1")
	require.NoError(t, err)

	_, err = runCLI(t, newMockAPI(t), "restock", "s1", "--amount", "0")
	require.Error(t, err)

	_, err = runCLI(t, newMockAPI(t), "restock")
	require.Error(t, err)
}

func TestPurchase(t *testing.T) {
	api := newMockAPI(t)
	expectLogin(api)
	api.EXPECT().Purchase(gomock.Any(), "admin-token", "s1").Return(errors.New("out of stock"))

	_, err := runCLI(t, api, "purchase", "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase s1")
}

func TestConnect_Failures(t *testing.T) {
	t.Run("login rejected", func(t *testing.T) {
		api := newMockAPI(t)
		api.EXPECT().Login(gomock.Any(), adminCreds).Return("", errors.New("Incorrect email or password"))

		_, err := runCLI(t, api, "purchase", "s1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "login as admin@example.com")
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv(envAdminEmail, "")
		t.Setenv(envAdminPassword, "")
		cc := &commandContext{NewAPI: func(config.ShopAPIConfig, *slog.Logger) (ports.ShopAPI, error) {
			t.Fatal("API must not be built without credentials")
			return nil, nil
		}}
		root := newRootCmd(cc)
		root.SetOut(io.Discard)
		root.SetArgs([]string{"--api-url", "http://api.local", "purchase", "s1"})
		require.Error(t, root.ExecuteContext(t.Context()))
	})

	t.Run("missing api url", func(t *testing.T) {
		t.Setenv(envAPIURL, "")
		root := newRootCmd(&commandContext{})
		root.SetOut(io.Discard)
		root.SetArgs([]string{"--email", "a@b.c", "--password", "pw", "list"})
		err := root.ExecuteContext(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api url is required")
	})
}

func TestRootFlagsDefaultFromEnv(t *testing.T) {
	t.Setenv(envAPIURL, "http://api.local/api")
	t.Setenv(envAdminEmail, adminCreds.Email)
	t.Setenv(envAdminPassword, adminCreds.Password)

	api := newMockAPI(t)
	expectLogin(api)
	api.EXPECT().Purchase(gomock.Any(), "admin-token", "s3").Return(nil)

	cc := &commandContext{NewAPI: func(config.ShopAPIConfig, *slog.Logger) (ports.ShopAPI, error) { return api, nil }}
	root := newRootCmd(cc)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"purchase", "s3"})
	require.NoError(t, root.ExecuteContext(t.Context()))
	assert.Equal(t, "purchased one s3\n", out.String())
}
