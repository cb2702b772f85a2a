// Package cli implementa stockctl, la herramienta de línea de comandos del inventario.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/application/usecase"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/catalog"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/storage"
	"github.com/jhoicas/coffee-stock-api/pkg/config"
	"github.com/jhoicas/coffee-stock-api/pkg/jwt"
	"github.com/jhoicas/coffee-stock-api/pkg/logger"
)

// annotationNoBackend marca comandos que solo necesitan la configuración.
const annotationNoBackend = "no-backend"

// Options fuentes de configuración y backend; los tests las reemplazan.
type Options struct {
	LoadConfig  func() (*config.Config, error)
	OpenBackend func(ctx context.Context, cfg *config.Config) (*storage.Backend, error)
}

// DefaultOptions lee la configuración con Viper y abre el backend configurado sin migrar.
func DefaultOptions() Options {
	return Options{
		LoadConfig: config.Load,
		OpenBackend: func(ctx context.Context, cfg *config.Config) (*storage.Backend, error) {
			return storage.Open(ctx, cfg, false)
		},
	}
}

// runtime estado compartido entre comandos; el shell lo reutiliza entre líneas.
type runtime struct {
	opts    Options
	cfg     *config.Config
	backend *storage.Backend

	products *usecase.ProductUseCase
	adjust   *inventory.AdjustStockUseCase
	query    *inventory.QueryUseCase
}

func (r *runtime) loadConfig(backendOverride string) error {
	if r.cfg != nil {
		return nil
	}
	cfg, err := r.opts.LoadConfig()
	if err != nil {
		return err
	}
	if backendOverride != "" {
		cfg.Store.Backend = strings.ToLower(backendOverride)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})
	r.cfg = cfg
	return nil
}

func (r *runtime) openBackend(ctx context.Context) error {
	if r.backend != nil {
		return nil
	}
	backend, err := r.opts.OpenBackend(ctx, r.cfg)
	if err != nil {
		return err
	}
	r.backend = backend
	r.products = usecase.NewProductUseCase(backend.Products)
	r.adjust = inventory.NewAdjustStockUseCase(backend.TxRunner, inventory.RetryConfig{
		MaxRetries: r.cfg.Inventory.MaxRetries,
		Backoff:    r.cfg.Inventory.RetryBackoff(),
	})
	r.query = inventory.NewQueryUseCase(backend.TxRunner, backend.Products)
	return nil
}

// Close libera el backend si llegó a abrirse.
func (r *runtime) Close() {
	if r.backend != nil {
		r.backend.Close()
	}
}

// NewRootCmd arma el árbol de comandos. El llamador debe invocar el cierre devuelto al terminar.
func NewRootCmd(opts Options) (*cobra.Command, func()) {
	rt := &runtime{opts: opts}
	var backendFlag string

	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Administración del inventario de la cafetería",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.loadConfig(backendFlag); err != nil {
				return err
			}
			if cmd.Annotations[annotationNoBackend] == "true" {
				return nil
			}
			return rt.openBackend(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&backendFlag, "store", "", "backend de almacenamiento: postgres|memory (por defecto STORE_BACKEND)")

	root.AddCommand(
		migrateCmd(rt),
		seedCmd(rt),
		importCmd(rt),
		listCmd(rt),
		adjustCmd(rt),
		historyCmd(rt),
		tokenCmd(rt),
		shellCmd(root),
	)
	return root, rt.Close
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return id, nil
}

func migrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes (solo postgres)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			applied, err := rt.backend.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
			}
			return nil
		},
	}
}

// demoCatalog catálogo de ejemplo para entornos locales.
var demoCatalog = []struct {
	Name  string
	Type  entity.ProductType
	Price int64
	Stock int64
}{
	{"Colombia Huila 250g", entity.ProductTypeBean, 16000, 40},
	{"Etiopía Yirgacheffe 250g", entity.ProductTypeBean, 21000, 25},
	{"Kenya AA 250g", entity.ProductTypeBean, 19500, 8},
	{"Tiramisú", entity.ProductTypeDessert, 9500, 12},
	{"Cheesecake de maracuyá", entity.ProductTypeDessert, 8500, 6},
	{"Brownie", entity.ProductTypeDessert, 4500, 30},
}

func seedCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea el catálogo de demostración",
		RunE: func(cmd *cobra.Command, _ []string) error {
			created := make([]dto.ProductResponse, 0, len(demoCatalog))
			for _, item := range demoCatalog {
				price, stock := item.Price, item.Stock
				out, err := rt.products.Create(cmd.Context(), dto.CreateProductRequest{
					Name: item.Name, Type: item.Type.String(), Price: &price, Stock: &stock,
				})
				if err != nil {
					return fmt.Errorf("seed %q: %w", item.Name, err)
				}
				created = append(created, *out)
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
}

func importCmd(rt *runtime) *cobra.Command {
	var file, charset string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa productos desde un CSV name,type,price,stock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := catalog.ReadProducts(f, charset)
			if err != nil {
				return err
			}
			created := make([]dto.ProductResponse, 0, len(rows))
			for i, row := range rows {
				out, err := rt.products.Create(cmd.Context(), row)
				if err != nil {
					return fmt.Errorf("fila %d (%s): %w", i+1, row.Name, err)
				}
				created = append(created, *out)
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "ruta del CSV")
	cmd.Flags().StringVar(&charset, "charset", catalog.CharsetUTF8, "utf-8|iso-8859-1|windows-1252")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func listCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista los productos en orden de creación",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := rt.query.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}
}

func adjustCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <product-id> <in|out> <quantity>",
		Short: "Registra una entrada o salida de stock",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			direction, err := entity.ParseTransactionType(strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			qty, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
			stock, err := rt.adjust.Adjust(cmd.Context(), id, direction, qty)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.StockAdjustResponse{ProductID: id, Stock: stock})
		},
	}
}

func historyCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "history <product-id>",
		Short: "Muestra los movimientos del producto, más recientes primero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			history, err := rt.query.GetTransactionHistory(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), history)
		},
	}
}

func tokenCmd(rt *runtime) *cobra.Command {
	var subject, role string
	cmd := &cobra.Command{
		Use:         "token",
		Short:       "Emite un JWT para las rutas de escritura de la API",
		Annotations: map[string]string{annotationNoBackend: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !rt.cfg.JWT.Enabled() {
				return fmt.Errorf("JWT_SECRET no configurado")
			}
			if role != jwt.RoleAdmin && role != jwt.RoleClerk {
				return fmt.Errorf("rol inválido %q (%s|%s)", role, jwt.RoleAdmin, jwt.RoleClerk)
			}
			tok, err := jwt.Generate(rt.cfg.JWT.Secret, subject, role, rt.cfg.JWT.Issuer, rt.cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "stockctl", "sujeto del token")
	cmd.Flags().StringVar(&role, "role", jwt.RoleClerk, "rol: admin|clerk")
	return cmd
}

// shellCmd modo interactivo: con el backend en memoria es la única forma de encadenar comandos.
func shellCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Modo interactivo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := bufio.NewReader(cmd.InOrStdin())
			for {
				fmt.Fprint(cmd.OutOrStdout(), "stockctl> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				switch line {
				case "":
					continue
				case "exit", "quit":
					return nil
				}
				fields := strings.Fields(line)
				if fields[0] == "shell" {
					continue
				}
				root.SetArgs(fields)
				if err := root.ExecuteContext(cmd.Context()); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				}
			}
		},
	}
}
