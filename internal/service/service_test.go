package service

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/config"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/storage"
	"github.com/jakubrevaj/Matratex/internal/testutil"
)

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	store, err := storage.New(config.MinIOConfig{LocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}

	cfg := &config.Config{
		Invoice: config.InvoiceConfig{
			SupplierName: "Matratex s.r.o.",
			IBAN:         "SK2202000000001572951551",
			VATRate:      0.23,
			DueDays:      14,
		},
	}

	return NewServices(db, repository.NewRepositories(db), store, cfg, zap.NewNop()), db
}
