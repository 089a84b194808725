package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"clinicbook/config"
	"clinicbook/database"
	bookingRepo "clinicbook/database/repository/booking"
	catalogRepo "clinicbook/database/repository/catalog"
	paymentRepo "clinicbook/database/repository/payment"
	providerRepo "clinicbook/database/repository/provider"
	userRepo "clinicbook/database/repository/user"
)

// stores bundles the repositories for one storage backend.
type stores struct {
	catalog   catalogRepo.CatalogRepository
	bookings  bookingRepo.BookingRepository
	payments  paymentRepo.PaymentRepository
	users     userRepo.UserRepository
	providers providerRepo.ProviderRepository
	// tx is nil when payment writes are not wrapped in a transaction.
	tx     database.TxRunner
	client *mongo.Client
}

func newMemoryStores() *stores {
	bookings := bookingRepo.NewMemoryBookingRepo(config.AppConfig.EnforceSlotClaim)
	return &stores{
		catalog:   catalogRepo.NewMemoryCatalogRepo(bookings),
		bookings:  bookings,
		payments:  paymentRepo.NewMemoryPaymentRepo(),
		users:     userRepo.NewMemoryUserRepo(),
		providers: providerRepo.NewMemoryProviderRepo(),
	}
}

func newMongoStores(ctx context.Context, logger *zap.Logger) (*stores, error) {
	client, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db := client.Database(config.AppConfig.DatabaseName)

	indexes := []struct {
		name   string
		ensure func(context.Context, *mongo.Database) error
	}{
		{"catalog", catalogRepo.EnsureIndexes},
		{"bookings", func(ctx context.Context, db *mongo.Database) error {
			return bookingRepo.EnsureIndexes(ctx, db, config.AppConfig.EnforceSlotClaim)
		}},
		{"payments", paymentRepo.EnsureIndexes},
		{"users", userRepo.EnsureIndexes},
		{"providers", providerRepo.EnsureIndexes},
	}
	for _, ix := range indexes {
		if err := ix.ensure(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure %s indexes: %w", ix.name, err)
		}
	}
	logger.Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))

	s := &stores{
		catalog:   catalogRepo.NewMongoCatalogRepo(db),
		bookings:  bookingRepo.NewMongoBookingRepo(db),
		payments:  paymentRepo.NewMongoPaymentRepo(db),
		users:     userRepo.NewMongoUserRepo(db),
		providers: providerRepo.NewMongoProviderRepo(db),
		client:    client,
	}
	if config.AppConfig.MongoTransactions {
		s.tx = database.MongoTxRunner{Client: client}
	}
	return s, nil
}

func (s *stores) seedCatalog(ctx context.Context, logger *zap.Logger) error {
	options, err := catalogRepo.LoadCatalogFile(config.AppConfig.CatalogFile)
	if err != nil {
		return err
	}
	if err := catalogRepo.Seed(ctx, s.catalog, options); err != nil {
		return err
	}
	logger.Info("Catalog seeded",
		zap.String("file", config.AppConfig.CatalogFile),
		zap.Int("treatments", len(options)))
	return nil
}

func (s *stores) close(ctx context.Context) {
	if s.client != nil {
		_ = s.client.Disconnect(ctx)
	}
}
