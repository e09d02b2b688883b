//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "luvyn",
				"POSTGRES_PASSWORD": "luvyn",
				"POSTGRES_DB":       "luvyn",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://luvyn:luvyn@%s:%s/luvyn?sslmode=disable", host, port.Port())
}

func TestStorageAgainstPostgres(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storage, err := New(ctx, dsn, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	users := storage.Users()
	orders := storage.Orders()

	alice, err := users.Create(ctx, &model.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &model.User{Username: "alice2", Email: "alice@x.com", PasswordHash: "h"})
	assert.True(t, errors.Is(err, domainErrors.ErrAlreadyExists))

	found, err := users.FindByUsernameOrEmail(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	first, err := orders.Create(ctx, &model.Order{
		UserID:        alice.ID,
		Products:      []model.LineItem{{ProductID: "p-1", Name: "Shirt", Quantity: 2, Price: decimal.NewFromInt(100000)}},
		TotalAmount:   decimal.NewFromInt(250000),
		Status:        model.OrderStatusConfirmed,
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	storage.now = func() time.Time { return time.Now().Add(time.Second) }
	second, err := orders.Create(ctx, &model.Order{
		UserID:        alice.ID,
		Products:      []model.LineItem{{ProductID: "p-2", Name: "Hat", Quantity: 1, Price: decimal.NewFromInt(50000)}},
		TotalAmount:   decimal.NewFromInt(50000),
		Status:        model.OrderStatusPending,
		PaymentMethod: "cod",
	})
	require.NoError(t, err)

	list, err := orders.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	fetched, err := orders.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, fetched.TotalAmount.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, 2, fetched.Products[0].Quantity)

	updated, err := orders.UpdateStatus(ctx, first.ID, first.Status, model.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, updated.Status)

	_, err = orders.UpdateStatus(ctx, first.ID, first.Status, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	_, err = orders.UpdateStatus(ctx, "missing", model.OrderStatusConfirmed, model.OrderStatusProcessing)
	assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
}
