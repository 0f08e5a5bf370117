package handlers

import (
	"log/slog"

	"github.com/rogerio-castellano/inventory-store/internal/service"
)

var (
	inventory *service.InventoryService
	logger    = slog.Default()
)

func SetInventoryService(s *service.InventoryService) {
	inventory = s
}

func SetLogger(l *slog.Logger) {
	logger = l
}
