package http

import (
	"github.com/nats-io/nats.go"

	"github.com/hyfac/catalog/internal/adapters/postgres"
	"github.com/hyfac/catalog/internal/adapters/valkey"
	"github.com/hyfac/catalog/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Stores   *usecases.StoreService
	Products *usecases.ProductService
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
