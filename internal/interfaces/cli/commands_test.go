package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/memory"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/storage"
	"github.com/jhoicas/coffee-stock-api/pkg/config"
	"github.com/jhoicas/coffee-stock-api/pkg/jwt"
)

const testSecret = "cli-test-secret"

// testOptions backend en memoria compartido por todas las ejecuciones del mismo root.
func testOptions(secret string) Options {
	store := memory.NewStore()
	return Options{
		LoadConfig: func() (*config.Config, error) {
			return &config.Config{
				App:       config.AppConfig{Env: "test"},
				Log:       config.LogConfig{Level: "error"},
				JWT:       config.JWTConfig{Secret: secret, Expiration: 5, Issuer: "stockctl-test"},
				Store:     config.StoreConfig{Backend: config.BackendMemory},
				Inventory: config.InventoryConfig{MaxRetries: 1},
			}, nil
		},
		OpenBackend: func(context.Context, *config.Config) (*storage.Backend, error) {
			return storage.NewMemory(store), nil
		},
	}
}

func run(t *testing.T, opts Options, stdin string, args ...string) (string, error) {
	t.Helper()
	root, closeRuntime := NewRootCmd(opts)
	defer closeRuntime()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedYList(t *testing.T) {
	opts := testOptions("")
	out, err := run(t, opts, "", "seed")
	require.NoError(t, err)

	var created []dto.ProductResponse
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Len(t, created, len(demoCatalog))
	assert.Equal(t, int64(1), created[0].ID)

	out, err = run(t, opts, "", "list")
	require.NoError(t, err)
	var list []dto.ProductResponse
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, len(demoCatalog))
}

func TestAdjustYHistory(t *testing.T) {
	opts := testOptions("")
	_, err := run(t, opts, "", "seed")
	require.NoError(t, err)

	out, err := run(t, opts, "", "adjust", "1", "out", "15")
	require.NoError(t, err)
	var adj dto.StockAdjustResponse
	require.NoError(t, json.Unmarshal([]byte(out), &adj))
	assert.Equal(t, int64(25), adj.Stock)

	_, err = run(t, opts, "", "adjust", "1", "out", "100")
	assert.EqualError(t, err, "insufficient stock, current stock: 25")

	_, err = run(t, opts, "", "adjust", "1", "sideways", "1")
	assert.Error(t, err)

	_, err = run(t, opts, "", "adjust", "abc", "in", "1")
	assert.EqualError(t, err, `invalid product id "abc"`)

	out, err = run(t, opts, "", "history", "1")
	require.NoError(t, err)
	var history []dto.TransactionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "OUT", history[0].Type)

	_, err = run(t, opts, "", "history", "999")
	assert.EqualError(t, err, "product does not exist")
}

func TestImportCSV(t *testing.T) {
	opts := testOptions("")
	path := filepath.Join(t.TempDir(), "catalogo.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,type,price,stock\nHuila,BEAN,16000,10\nFlan,DESSERT,3000,4\n"), 0o600))

	out, err := run(t, opts, "", "import", "--file", path)
	require.NoError(t, err)
	var created []dto.ProductResponse
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.Len(t, created, 2)
	assert.Equal(t, "Flan", created[1].Name)

	bad := filepath.Join(t.TempDir(), "malo.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Té,TEA,100,1\n"), 0o600))
	_, err = run(t, opts, "", "import", "--file", bad)
	assert.ErrorContains(t, err, "invalid product type: TEA")
}

func TestToken(t *testing.T) {
	out, err := run(t, testOptions(testSecret), "", "token", "--role", jwt.RoleAdmin, "--subject", "gerente")
	require.NoError(t, err)

	subject, role, err := jwt.Parse(testSecret, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "gerente", subject)
	assert.Equal(t, jwt.RoleAdmin, role)

	_, err = run(t, testOptions(""), "", "token")
	assert.Error(t, err, "sin secret no se emiten tokens")

	_, err = run(t, testOptions(testSecret), "", "token", "--role", "viewer")
	assert.Error(t, err)
}

func TestMigrateEnMemoria(t *testing.T) {
	_, err := run(t, testOptions(""), "", "migrate")
	assert.ErrorIs(t, err, storage.ErrMigrationsUnsupported)
}

func TestShellMantieneEstado(t *testing.T) {
	script := "seed\nadjust 4 in 8\nhistory 4\nexit\n"
	out, err := run(t, testOptions(""), script, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, `"stock": 20`)
	assert.Contains(t, out, `"type": "IN"`)
}
