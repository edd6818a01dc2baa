package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/guttosm/salespulse/config"
	"github.com/guttosm/salespulse/db"
	"github.com/guttosm/salespulse/internal/app"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/report"
	"github.com/guttosm/salespulse/internal/seed"
	"github.com/guttosm/salespulse/internal/service"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Configuration and logging are set up
// once before any subcommand runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salespulse",
		Short:         "Sales summary service and tooling.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig()
			logger.Init(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)
			return nil
		},
	}
	root.AddCommand(newAPICmd(), newMigrateCmd(), newSeedCmd(), newReportCmd())
	return root
}

func newAPICmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Start the REST API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = config.AppConfig.Server.Port
			}
			logger.L().Info().Str("driver", config.AppConfig.Driver).Msg("starting API server")

			router, cleanup, err := app.InitializeApp()
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}
			server := startServer(router, port)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port for the API server (default SERVER_PORT)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the sales schema.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			if cfg.Driver == config.DriverMySQL {
				store, err := app.InitMySQL(cfg)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				if err := store.EnsureSchema(cmd.Context()); err != nil {
					return fmt.Errorf("mysql schema: %w", err)
				}
				logger.L().Info().Msg("mysql schema up to date")
				return nil
			}

			conn, err := app.InitPostgres(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()
			if err := db.Migrate(cmd.Context(), conn); err != nil {
				return err
			}
			version, err := db.Version(cmd.Context(), conn)
			if err != nil {
				return err
			}
			logger.L().Info().Int64("version", version).Msg("postgres schema up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var sc config.SeedConfig
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all sales data with a deterministic synthetic population (postgres only).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			if cfg.Driver != config.DriverPostgres {
				return fmt.Errorf("seed requires DB_DRIVER=%s, got %q", config.DriverPostgres, cfg.Driver)
			}
			applySeedFlags(cmd, &sc, cfg.Seed)

			conn, err := app.InitPostgres(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			res, err := seed.Run(cmd.Context(), conn, seed.Config{
				Schema:     sc.Schema,
				Customers:  sc.Customers,
				Products:   sc.Products,
				Orders:     sc.Orders,
				OrderItems: sc.OrderItems,
				RandomSeed: sc.RandomSeed,
			})
			if err != nil {
				return err
			}
			green := color.New(color.FgGreen).FprintfFunc()
			green(cmd.OutOrStdout(), "seeded %s: %d customers, %d products, %d orders, %d order items\n",
				sc.Schema, res.Customers, res.Products, res.Orders, res.OrderItems)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&sc.Schema, "schema", "", "Target schema (default SEED_SCHEMA)")
	f.IntVar(&sc.Customers, "customers", 0, "Customers to create (default SEED_CUSTOMERS)")
	f.IntVar(&sc.Products, "products", 0, "Products to create (default SEED_PRODUCTS)")
	f.IntVar(&sc.Orders, "orders", 0, "Orders to create (default SEED_ORDERS)")
	f.IntVar(&sc.OrderItems, "items", 0, "Order items to create (default SEED_ORDER_ITEMS)")
	f.Int64Var(&sc.RandomSeed, "seed", 0, "Random seed (default SEED_RANDOM_SEED)")
	return cmd
}

// applySeedFlags fills every flag the user did not set from the configured defaults.
func applySeedFlags(cmd *cobra.Command, sc *config.SeedConfig, def config.SeedConfig) {
	f := cmd.Flags()
	if !f.Changed("schema") {
		sc.Schema = def.Schema
	}
	if !f.Changed("customers") {
		sc.Customers = def.Customers
	}
	if !f.Changed("products") {
		sc.Products = def.Products
	}
	if !f.Changed("orders") {
		sc.Orders = def.Orders
	}
	if !f.Changed("items") {
		sc.OrderItems = def.OrderItems
	}
	if !f.Changed("seed") {
		sc.RandomSeed = def.RandomSeed
	}
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print sales summaries as tables.",
	}
	cmd.AddCommand(newProductsReportCmd(), newSalesReportCmd(), newCustomersReportCmd())
	return cmd
}

// withSummary opens the configured store for the duration of fn.
func withSummary(fn func(service.SummaryService) error) error {
	store, cleanup, err := app.OpenStore(config.AppConfig)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(service.NewSummaryService(store))
}

func newProductsReportCmd() *cobra.Command {
	var ids string
	var parallel int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Stock and orders for each product, computed concurrently.",
		RunE: func(cmd *cobra.Command, args []string) error {
			productIDs, err := report.ParseIDs(ids)
			if err != nil {
				return err
			}
			return withSummary(func(svc service.SummaryService) error {
				results, err := report.CollectProductSales(cmd.Context(), svc, productIDs, parallel)
				if err != nil {
					return err
				}
				return report.WriteProductSales(cmd.OutOrStdout(), results)
			})
		},
	}
	cmd.Flags().StringVar(&ids, "ids", "", "Comma separated product ids")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Concurrent summaries (0=auto up to CPU, max 8)")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func newSalesReportCmd() *cobra.Command {
	var ids, from, to string
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Orders in a date range containing any of the products.",
		RunE: func(cmd *cobra.Command, args []string) error {
			productIDs, err := report.ParseIDs(ids)
			if err != nil {
				return err
			}
			start, end, err := report.ParseRange(from, to)
			if err != nil {
				return err
			}
			return withSummary(func(svc service.SummaryService) error {
				rep, err := svc.SalesByProducts(cmd.Context(), models.SalesQuery{
					ProductIDs: productIDs,
					Range:      models.DateRange{Start: start, End: end},
				})
				if err != nil {
					return err
				}
				return report.WriteSalesReport(cmd.OutOrStdout(), rep)
			})
		},
	}
	cmd.Flags().StringVar(&ids, "ids", "", "Comma separated product ids")
	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "Range end, inclusive (YYYY-MM-DD or RFC3339)")
	for _, name := range []string{"ids", "from", "to"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newCustomersReportCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Orders in a date range rolled up per customer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := report.ParseRange(from, to)
			if err != nil {
				return err
			}
			return withSummary(func(svc service.SummaryService) error {
				rep, err := svc.SalesByCustomers(cmd.Context(), models.DateRange{Start: start, End: end})
				if err != nil {
					return err
				}
				return report.WriteCustomerReport(cmd.OutOrStdout(), rep)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "Range end, inclusive (YYYY-MM-DD or RFC3339)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
