// Command bilemoctl administers the clients and the phone catalog directly
// against the API database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bilemo-api/internal/config"
	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository/sqlite"
	"bilemo-api/internal/service"
)

type app struct {
	clients service.ClientService
	phones  service.PhoneService
	close   func() error
}

func open(ctx context.Context, dbPath string) (*app, error) {
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	repos, err := sqlite.NewRepositories(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &app{
		clients: service.NewClientService(repos.Clients, ""),
		phones:  service.NewPhoneService(repos.Phones, service.Paging{}),
		close:   db.Close,
	}, nil
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg.Database.Path).ExecuteContext(ctx); err != nil {
		logger.Fatal(err)
	}
}

func newRootCmd(defaultDB string) *cobra.Command {
	var (
		dbPath string
		a      *app
	)

	root := &cobra.Command{
		Use:           "bilemoctl",
		Short:         "Manage API clients and the mobile phone catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = open(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("open database %s: %w", dbPath, err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a != nil {
				return a.close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "sqlite database path (env BILEMO_DATABASE_PATH)")

	clientCmd := &cobra.Command{Use: "client", Short: "Client accounts"}
	var name, email, password string
	createClientCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.clients.CreateClient(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"id": client.ID, "name": client.Name, "email": client.Email})
		},
	}
	createClientCmd.Flags().StringVar(&name, "name", "", "client display name")
	createClientCmd.Flags().StringVar(&email, "email", "", "login email")
	createClientCmd.Flags().StringVar(&password, "password", "", "login password (min 8 chars)")
	_ = createClientCmd.MarkFlagRequired("email")
	_ = createClientCmd.MarkFlagRequired("password")
	clientCmd.AddCommand(createClientCmd)

	phoneCmd := &cobra.Command{Use: "phone", Short: "Mobile phone catalog"}
	var phone domain.MobilePhone
	addPhoneCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phone to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.phones.AddPhone(cmd.Context(), phone)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	addPhoneCmd.Flags().StringVar(&phone.Brand, "brand", "", "manufacturer")
	addPhoneCmd.Flags().StringVar(&phone.Model, "model", "", "commercial model name")
	addPhoneCmd.Flags().StringVar(&phone.Reference, "reference", "", "alphanumeric reference used by the product filter")
	addPhoneCmd.Flags().Int64Var(&phone.PriceCents, "price-cents", 0, "price in cents")
	addPhoneCmd.Flags().StringVar(&phone.Description, "description", "", "free text description")

	var limit, offset int
	listPhonesCmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.phones.ListPhones(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			for _, p := range page.Phones {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", strconv.FormatInt(p.ID, 10), p.Reference, p.Brand, p.Model)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(page.Phones), page.Total)
			return nil
		},
	}
	listPhonesCmd.Flags().IntVar(&limit, "limit", service.DefaultPageLimit, "page size")
	listPhonesCmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	phoneCmd.AddCommand(addPhoneCmd, listPhonesCmd)

	root.AddCommand(clientCmd, phoneCmd)
	return root
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
