package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/access"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
	"github.com/jhoicas/inventario-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

func openTestStore(t *testing.T) *sql.DB {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), access.DefaultSalt, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOpen_CreaEsquemaYSiembraAdmin(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()

	admin, err := sqlite.NewUserRepository(db).GetByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	require.NotNil(t, admin, "un almacén recién creado siempre tiene ADMIN")
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, access.Digest(access.DefaultAdminSecret, access.DefaultSalt), admin.Digest)
}

func TestOpen_ReabrirNoDuplicaAdmin(t *testing.T) {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	db, err := sqlite.Open(ctx, path, access.DefaultSalt, log)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path, access.DefaultSalt, log)
	require.NoError(t, err)
	defer db.Close()

	users, err := sqlite.NewUserRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestOpen_RutaInvalida(t *testing.T) {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	_, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "no-existe", "sub", "test.db"), access.DefaultSalt, log)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestLedgerRepo_NextID(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	repo := sqlite.NewLedgerRepository(db)

	for _, stream := range []entity.Stream{entity.StreamIncoming, entity.StreamOutgoing, entity.StreamAdjustment} {
		next, err := repo.NextID(ctx, stream)
		require.NoError(t, err)
		assert.Equal(t, int64(1), next, "stream %s vacío", stream)
	}

	for i := 0; i < 3; i++ {
		_, err := repo.InsertIncoming(ctx, &entity.IncomingHeader{Date: time.Now()})
		require.NoError(t, err)
	}
	next, err := repo.NextID(ctx, entity.StreamIncoming)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)

	// Las secuencias son independientes por stream.
	next, err = repo.NextID(ctx, entity.StreamAdjustment)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	_, err = repo.NextID(ctx, entity.Stream("purchases"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerRepo_InsertYGetIncoming(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	repo := sqlite.NewLedgerRepository(db)

	productID, err := sqlite.NewProductRepository(db).Create(ctx, &entity.Product{Code: "A-01", Description: "Cemento"})
	require.NoError(t, err)

	date := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	id, err := repo.InsertIncoming(ctx, &entity.IncomingHeader{
		Date: date, DNNumber: "DN-77", Supplier: "Ferretería Sur", Remarks: "urgente",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id, "el almacén asigna el id al insertar")

	err = repo.InsertIncomingLines(ctx, []*entity.IncomingLine{
		{IncomingID: id, ProductID: productID, Quantity: dec("100"), Price: dec("10")},
	})
	require.NoError(t, err)

	h, lines, err := repo.GetIncoming(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "DN-77", h.DNNumber)
	assert.Equal(t, "Ferretería Sur", h.Supplier)
	assert.True(t, h.Date.Equal(date))
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(dec("100")))
	assert.True(t, lines[0].Price.Equal(dec("10")))
}

func TestLedgerRepo_GetInexistente(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	repo := sqlite.NewLedgerRepository(db)

	h, lines, err := repo.GetIncoming(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, h)
	assert.Nil(t, lines)
}

func TestLedgerRepo_Movements(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	repo := sqlite.NewLedgerRepository(db)
	productRepo := sqlite.NewProductRepository(db)

	p1, err := productRepo.Create(ctx, &entity.Product{Code: "A-01", Description: "Cemento"})
	require.NoError(t, err)
	p2, err := productRepo.Create(ctx, &entity.Product{Code: "B-02", Description: "Arena"})
	require.NoError(t, err)
	ccID, err := sqlite.NewCostCenterRepository(db).Create(ctx, &entity.CostCenter{Code: "OBRA-1", Description: "Obra norte"})
	require.NoError(t, err)

	date := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	inID, err := repo.InsertIncoming(ctx, &entity.IncomingHeader{Date: date})
	require.NoError(t, err)
	require.NoError(t, repo.InsertIncomingLines(ctx, []*entity.IncomingLine{
		{IncomingID: inID, ProductID: p1, Quantity: dec("100"), Price: dec("10")},
		{IncomingID: inID, ProductID: p2, Quantity: dec("7"), Price: dec("3")},
	}))
	outID, err := repo.InsertOutgoing(ctx, &entity.OutgoingHeader{Date: date.AddDate(0, 0, 1), CostCenterID: ccID})
	require.NoError(t, err)
	require.NoError(t, repo.InsertOutgoingLines(ctx, []*entity.OutgoingLine{
		{OutgoingID: outID, ProductID: p1, Quantity: dec("30"), Price: dec("12")},
	}))
	adjID, err := repo.InsertAdjustment(ctx, &entity.AdjustmentHeader{Date: date.AddDate(0, 0, 2)})
	require.NoError(t, err)
	require.NoError(t, repo.InsertAdjustmentLines(ctx, []*entity.AdjustmentLine{
		{AdjustmentID: adjID, ProductID: p1, Quantity: dec("-5"), Price: dec("10"), Kind: entity.AdjustmentDecrease},
	}))

	// Por producto: solo las líneas de p1, en orden de fecha.
	movements, err := repo.Movements(ctx, p1)
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, entity.StreamIncoming, movements[0].Stream)
	assert.Equal(t, entity.StreamOutgoing, movements[1].Stream)
	assert.Equal(t, entity.StreamAdjustment, movements[2].Stream)
	assert.True(t, movements[2].Quantity.Equal(dec("-5")), "la cantidad de ajuste conserva el signo")

	// Todas: incluye también la línea de p2.
	all, err := repo.AllMovements(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTxRunner_RollbackSinRastros(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	runner := sqlite.NewTxRunner(db)

	productID, err := sqlite.NewProductRepository(db).Create(ctx, &entity.Product{Code: "A-01", Description: "Cemento"})
	require.NoError(t, err)

	boom := errors.New("falla entre cabecera y líneas")
	err = runner.Run(ctx, func(repo repository.LedgerRepository) error {
		id, err := repo.InsertIncoming(ctx, &entity.IncomingHeader{Date: time.Now()})
		if err != nil {
			return err
		}
		if err := repo.InsertIncomingLines(ctx, []*entity.IncomingLine{
			{IncomingID: id, ProductID: productID, Quantity: dec("1"), Price: dec("1")},
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	repo := sqlite.NewLedgerRepository(db)
	h, _, err := repo.GetIncoming(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, h, "una transacción abortada no deja nada visible")

	// La secuencia se revierte con la transacción: sin huecos.
	next, err := repo.NextID(ctx, entity.StreamIncoming)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestTxRunner_Commit(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	runner := sqlite.NewTxRunner(db)

	var id int64
	err := runner.Run(ctx, func(repo repository.LedgerRepository) error {
		var err error
		id, err = repo.InsertAdjustment(ctx, &entity.AdjustmentHeader{Date: time.Now(), Remarks: "conteo físico"})
		return err
	})
	require.NoError(t, err)

	h, _, err := sqlite.NewLedgerRepository(db).GetAdjustment(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "conteo físico", h.Remarks)
}

func TestUserRepo_UsernameDuplicado(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	repo := sqlite.NewUserRepository(db)

	_, err := repo.Create(ctx, &entity.User{Username: "maria", Digest: "d1", Role: entity.RoleStandard})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &entity.User{Username: "maria", Digest: "d2", Role: entity.RoleStandard})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_GetByCodePrimeroPorCreacion(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	repo := sqlite.NewProductRepository(db)

	first, err := repo.Create(ctx, &entity.Product{Code: "A-01", Description: "original"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &entity.Product{Code: "A-01", Description: "duplicado"})
	require.NoError(t, err)

	p, err := repo.GetByCode(ctx, "A-01")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, first, p.ID, "ante códigos repetidos gana el primero")

	missing, err := repo.GetByCode(ctx, "Z-99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_DecimalesSinPerdida(t *testing.T) {
	db := openTestStore(t)
	ctx := context.Background()
	repo := sqlite.NewProductRepository(db)

	id, err := repo.Create(ctx, &entity.Product{
		Code: "A-01", Description: "Cemento", Price: dec("1234567.89"), MaxQty: dec("0.001"),
	})
	require.NoError(t, err)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Price.Equal(dec("1234567.89")))
	assert.True(t, p.MaxQty.Equal(dec("0.001")))
}
