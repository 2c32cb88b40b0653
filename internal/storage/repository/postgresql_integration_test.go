package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egsmart/smartwifi-backend/internal/models"
)

func TestStorage_InsertCards(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	cafeID := factory.CreateCafe(t, "Corner Cafe", "active")
	planID := factory.CreatePlan(t, "1 hour", 50, 1, "hours")

	ctx := context.Background()

	inserted, err := storage.InsertCards(ctx, cafeID, planID, []string{"AAAA", "BBBB", "CCCC"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAAA", "BBBB", "CCCC"}, inserted)

	// Повторная партия с пересечением: занятые коды отбрасываются,
	// вставляются только новые.
	inserted, err = storage.InsertCards(ctx, cafeID, planID, []string{"BBBB", "DDDD", "EEEE"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"DDDD", "EEEE"}, inserted)

	// Полностью занятая партия не вставляет ничего.
	inserted, err = storage.InsertCards(ctx, cafeID, planID, []string{"AAAA", "BBBB"})
	require.NoError(t, err)
	assert.Empty(t, inserted)

	assert.Equal(t, 5, factory.CountCards(t, cafeID))
}

func TestStorage_InsertCards_UniqueAcrossCafes(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	firstCafe := factory.CreateCafe(t, "First Cafe", "active")
	secondCafe := factory.CreateCafe(t, "Second Cafe", "active")
	planID := factory.CreatePlan(t, "1 hour", 50, 1, "hours")

	ctx := context.Background()

	inserted, err := storage.InsertCards(ctx, firstCafe, planID, []string{"SHARED"})
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	// Код уникален во всей системе, а не внутри одного кафе.
	inserted, err = storage.InsertCards(ctx, secondCafe, planID, []string{"SHARED"})
	require.NoError(t, err)
	assert.Empty(t, inserted)
}

func TestStorage_ListCards(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	firstCafe := factory.CreateCafe(t, "First Cafe", "active")
	secondCafe := factory.CreateCafe(t, "Second Cafe", "active")
	planID := factory.CreatePlan(t, "1 hour", 50, 1, "hours")

	for i := range 5 {
		factory.CreateCard(t, fmt.Sprintf("FIRST%d", i), firstCafe, planID)
	}
	factory.CreateCard(t, "SECOND0", secondCafe, planID)

	ctx := context.Background()

	tests := []struct {
		name      string
		filter    models.CardFilter
		wantCount int
	}{
		{
			name:      "filter by cafe",
			filter:    models.CardFilter{CafeID: firstCafe, Limit: 100},
			wantCount: 5,
		},
		{
			name:      "filter by exact code",
			filter:    models.CardFilter{Code: "SECOND0", Limit: 100},
			wantCount: 1,
		},
		{
			name:      "filter by cafe and code",
			filter:    models.CardFilter{CafeID: firstCafe, Code: "FIRST3", Limit: 100},
			wantCount: 1,
		},
		{
			name:      "limit truncates the page",
			filter:    models.CardFilter{CafeID: firstCafe, Limit: 2},
			wantCount: 2,
		},
		{
			name:      "no matches",
			filter:    models.CardFilter{Code: "NOPE", Limit: 100},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := storage.ListCards(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, cards, tt.wantCount)
		})
	}
}

func TestStorage_ClaimInstallToken(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	cafeID := factory.CreateCafe(t, "Corner Cafe", "active")

	ctx := context.Background()

	token, claimed, err := storage.ClaimInstallToken(ctx, cafeID, "FIRSTTOKEN")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, "FIRSTTOKEN", token)

	// Повторный вызов с другим кандидатом возвращает прежний токен.
	token, claimed, err = storage.ClaimInstallToken(ctx, cafeID, "OTHERTOKEN")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, "FIRSTTOKEN", token)
}

func TestStorage_ClaimInstallToken_UnknownCafe(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	token, claimed, err := storage.ClaimInstallToken(ctx, "a3f1c2d4-0000-0000-0000-000000000042", "SOMETOKEN")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, claimed)
	assert.Empty(t, token)
}

func TestStorage_ClaimInstallToken_Concurrent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	cafeID := factory.CreateCafe(t, "Corner Cafe", "active")

	const workers = 10

	var wg sync.WaitGroup
	tokens := make([]string, workers)
	claims := make([]bool, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], claims[i], errs[i] = storage.ClaimInstallToken(
				context.Background(), cafeID, fmt.Sprintf("CANDIDATE%d", i))
		}(i)
	}
	wg.Wait()

	claimedCount := 0
	for i := range workers {
		require.NoError(t, errs[i])
		if claims[i] {
			claimedCount++
		}
		// Все конкурирующие вызовы получают один и тот же токен.
		assert.Equal(t, tokens[0], tokens[i])
	}
	assert.Equal(t, 1, claimedCount)
}

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	_, err := storage.GetUserByUsername(ctx, "admin")
	assert.ErrorIs(t, err, ErrNotFound)

	err = storage.CreateUserIfAbsent(ctx, "admin", "first_hash", "admin")
	require.NoError(t, err)

	// Повторное создание не затирает существующего пользователя.
	err = storage.CreateUserIfAbsent(ctx, "admin", "second_hash", "operator")
	require.NoError(t, err)

	user, err := storage.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "first_hash", user.PasswordHash)
	assert.Equal(t, "admin", user.Role)
	assert.NotEmpty(t, user.UID)
}

func TestStorage_UpdateCafeStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	cafeID := factory.CreateCafe(t, "Corner Cafe", "active")

	ctx := context.Background()

	count, err := storage.UpdateCafeStatus(ctx, cafeID, "suspended")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	cafe, err := storage.GetCafe(ctx, cafeID)
	require.NoError(t, err)
	assert.Equal(t, "suspended", cafe.Status)

	count, err = storage.UpdateCafeStatus(ctx, "a3f1c2d4-0000-0000-0000-000000000042", "active")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_Plans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreatePlan(ctx, models.Plan{
		Name:         "3 hours",
		Price:        100,
		QuotaMB:      2048,
		UploadMbps:   5,
		DownloadMbps: 10,
		Duration:     models.PlanDuration{Value: 3, Unit: models.DurationUnitHours},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	plans, err := storage.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "3 hours", plans[0].Name)
	assert.Equal(t, 3, plans[0].Duration.Value)
	assert.Equal(t, models.DurationUnitHours, plans[0].Duration.Unit)

	count, err := storage.DeletePlan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.DeletePlan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_Designs(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	cafeID := factory.CreateCafe(t, "Corner Cafe", "active")
	cafeName := "Corner Cafe"

	ctx := context.Background()

	id, err := storage.CreateDesign(ctx, models.Design{
		CafeID:   cafeID,
		CafeName: &cafeName,
		Name:     "spring layout",
		Template: "<html></html>",
	})
	require.NoError(t, err)

	design, err := storage.GetDesign(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "spring layout", design.Name)
	require.NotNil(t, design.CafeName)
	assert.Equal(t, cafeName, *design.CafeName)

	designs, err := storage.ListDesigns(ctx)
	require.NoError(t, err)
	assert.Len(t, designs, 1)

	_, err = storage.GetDesign(ctx, "a3f1c2d4-0000-0000-0000-000000000042")
	assert.ErrorIs(t, err, ErrNotFound)
}
