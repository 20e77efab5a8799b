// Command seed prepares the dashboard database: it migrates the schema,
// optionally loads the placeholder customers, invoices and revenue, and
// creates the first admin account.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
	"github.com/99minutos/invoice-dashboard/internal/core/service"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/db/postgres"
	"github.com/99minutos/invoice-dashboard/pkg/logger"
)

func main() {
	var (
		databaseURL   = pflag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
		placeholder   = pflag.Bool("placeholder", true, "load placeholder customers, invoices and revenue")
		adminEmail    = pflag.String("admin-email", "", "email of the admin created when none exists")
		adminPassword = pflag.String("admin-password", "", "password of the bootstrap admin")
		adminName     = pflag.String("admin-name", "Administrator", "name of the bootstrap admin")
		logLevel      = pflag.String("log-level", "info", "log level")
	)
	pflag.Parse()

	log := logger.Init(logger.Options{Level: *logLevel, Pretty: true, Service: "seed"})

	if *databaseURL == "" {
		log.Fatal().Msg("--database-url or DATABASE_URL is required")
	}
	if *adminEmail != "" && *adminPassword == "" {
		log.Fatal().Msg("--admin-password is required with --admin-email")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, postgres.Config{URL: *databaseURL})
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("schema up to date")

	if *placeholder {
		counts, err := postgres.Seed(ctx, db, placeholderData())
		if err != nil {
			log.Fatal().Err(err).Msg("seed placeholder data")
		}
		log.Info().
			Int64("customers", counts.Customers).
			Int64("invoices", counts.Invoices).
			Int64("revenue", counts.Revenue).
			Msg("placeholder data seeded")
	}

	if *adminEmail != "" {
		accounts := service.NewAccountService(postgres.NewAccountRepository(db), nil, log.Level(zerolog.WarnLevel))
		created, err := accounts.Bootstrap(ctx, ports.CreateAccountInput{
			Name:     *adminName,
			Email:    *adminEmail,
			Password: *adminPassword,
			ActorID:  "seed",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("create admin")
		}
		if created {
			log.Info().Str("email", *adminEmail).Msg("admin created")
		} else {
			log.Info().Msg("an admin already exists, skipped")
		}
	}
}

var (
	evilRabbit      = domain.Customer{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"}
	delbaDeOliveira = domain.Customer{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"}
	leeRobinson     = domain.Customer{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"}
	michaelNovotny  = domain.Customer{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"}
	amyBurns        = domain.Customer{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"}
	balazsOrban     = domain.Customer{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"}
)

func placeholderData() postgres.SeedData {
	type row struct {
		customer domain.Customer
		cents    int64
		status   domain.InvoiceStatus
		date     string
	}
	rows := []row{
		{evilRabbit, 15795, domain.InvoicePending, "2022-12-06"},
		{delbaDeOliveira, 20348, domain.InvoicePending, "2022-11-14"},
		{amyBurns, 3040, domain.InvoicePaid, "2022-10-29"},
		{michaelNovotny, 44800, domain.InvoicePaid, "2023-09-10"},
		{balazsOrban, 34577, domain.InvoicePending, "2023-08-05"},
		{leeRobinson, 54246, domain.InvoicePending, "2023-07-16"},
		{evilRabbit, 666, domain.InvoicePending, "2023-06-27"},
		{michaelNovotny, 32545, domain.InvoicePaid, "2023-06-09"},
		{amyBurns, 1250, domain.InvoicePaid, "2023-06-17"},
		{balazsOrban, 8546, domain.InvoicePaid, "2023-06-07"},
		{delbaDeOliveira, 500, domain.InvoicePaid, "2023-08-19"},
		{balazsOrban, 8945, domain.InvoicePaid, "2023-06-03"},
		{amyBurns, 1000, domain.InvoicePaid, "2022-06-05"},
	}

	data := postgres.SeedData{
		Customers: []domain.Customer{evilRabbit, delbaDeOliveira, leeRobinson, michaelNovotny, amyBurns, balazsOrban},
	}
	for i, r := range rows {
		date, err := time.Parse("2006-01-02", r.date)
		if err != nil {
			panic(err)
		}
		// Stable ids keep reseeding idempotent.
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("placeholder-invoice-%d", i)))
		data.Invoices = append(data.Invoices, domain.Invoice{
			ID:         id.String(),
			CustomerID: r.customer.ID,
			Amount:     r.cents,
			Status:     r.status,
			Date:       date,
		})
	}

	revenue := []int64{2000, 1800, 2200, 2500, 2300, 3200, 3500, 3700, 2500, 2800, 3000, 4800}
	for i, m := range domain.Months {
		data.Revenue = append(data.Revenue, domain.Revenue{Month: m, Revenue: revenue[i]})
	}
	return data
}
