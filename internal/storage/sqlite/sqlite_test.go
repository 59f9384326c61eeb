package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/money"
	"github.com/mmynk/tabby/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tabby-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedTab(t *testing.T, store *SQLiteStore, names ...string) (*models.Tab, []*models.Participant) {
	t.Helper()
	ctx := context.Background()

	tab := &models.Tab{Name: "Trip", Currency: "USD", InviteCode: "code-" + t.Name()}
	if err := store.CreateTab(ctx, tab); err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}

	var participants []*models.Participant
	for i, name := range names {
		p := &models.Participant{
			TabID:       tab.ID,
			Name:        name,
			AccessToken: "token-" + t.Name() + "-" + name,
			CreatedAt:   int64(1000 + i), // fixed stamps keep join order stable
		}
		if err := store.CreateParticipant(ctx, p); err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
		participants = append(participants, p)
	}
	return tab, participants
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTab generates ID and timestamps", func(t *testing.T) {
		tab := &models.Tab{Name: "Flat 4B", Currency: "EUR", InviteCode: "abc12345"}
		if err := store.CreateTab(ctx, tab); err != nil {
			t.Fatalf("CreateTab failed: %v", err)
		}

		if tab.ID == "" {
			t.Error("Expected tab ID to be generated")
		}
		if tab.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		byCode, err := store.GetTabByInviteCode(ctx, "abc12345")
		if err != nil {
			t.Fatalf("GetTabByInviteCode failed: %v", err)
		}
		if byCode.ID != tab.ID {
			t.Errorf("ID mismatch: got %s, want %s", byCode.ID, tab.ID)
		}
		if byCode.Currency != "EUR" {
			t.Errorf("Currency mismatch: got %s, want EUR", byCode.Currency)
		}
	})

	t.Run("missing tab wraps ErrNotFound", func(t *testing.T) {
		_, err := store.GetTab(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
		_, err = store.GetTabByInviteCode(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("participants listed in join order", func(t *testing.T) {
		_, people := seedTab(t, store, "Ana", "Ben", "Kim")

		listed, err := store.ListParticipants(ctx, people[0].TabID)
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		if len(listed) != 3 {
			t.Fatalf("got %d participants, want 3", len(listed))
		}
		for i, want := range []string{"Ana", "Ben", "Kim"} {
			if listed[i].Name != want {
				t.Errorf("listed[%d] = %s, want %s", i, listed[i].Name, want)
			}
		}
	})

	t.Run("participant lookup by token", func(t *testing.T) {
		_, people := seedTab(t, store, "Ana")

		found, err := store.GetParticipantByToken(ctx, people[0].AccessToken)
		if err != nil {
			t.Fatalf("GetParticipantByToken failed: %v", err)
		}
		if found.ID != people[0].ID {
			t.Errorf("ID mismatch: got %s, want %s", found.ID, people[0].ID)
		}

		_, err = store.GetParticipantByToken(ctx, "bogus")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("CreateIOU persists splits atomically", func(t *testing.T) {
		tab, people := seedTab(t, store, "Ana", "Ben")

		iou := &models.IOU{
			TabID:       tab.ID,
			PayerID:     people[0].ID,
			Amount:      money.MustParse("30.00"),
			Description: "lunch",
			SplitType:   models.SplitEven,
			Splits: []models.Split{
				{ParticipantID: people[0].ID, Amount: money.MustParse("15.00")},
				{ParticipantID: people[1].ID, Amount: money.MustParse("15.00")},
			},
		}
		if err := store.CreateIOU(ctx, iou); err != nil {
			t.Fatalf("CreateIOU failed: %v", err)
		}
		if iou.ID == "" {
			t.Error("Expected iou ID to be generated")
		}

		ious, err := store.ListIOUs(ctx, tab.ID)
		if err != nil {
			t.Fatalf("ListIOUs failed: %v", err)
		}
		if len(ious) != 1 {
			t.Fatalf("got %d ious, want 1", len(ious))
		}
		got := ious[0]
		if got.Description != "lunch" {
			t.Errorf("Description = %s, want lunch", got.Description)
		}
		if got.Amount.String() != "30.00" {
			t.Errorf("Amount = %s, want 30.00", got.Amount)
		}
		if got.SplitType != models.SplitEven {
			t.Errorf("SplitType = %s, want even", got.SplitType)
		}
		if len(got.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(got.Splits))
		}
		for _, split := range got.Splits {
			if split.Amount.String() != "15.00" {
				t.Errorf("split amount = %s, want 15.00", split.Amount)
			}
			if split.IOUID != got.ID {
				t.Errorf("split iou_id = %s, want %s", split.IOUID, got.ID)
			}
		}
	})

	t.Run("CreateIOU rejects splits that do not sum to total", func(t *testing.T) {
		tab, people := seedTab(t, store, "Ana", "Ben")

		iou := &models.IOU{
			TabID:       tab.ID,
			PayerID:     people[0].ID,
			Amount:      money.MustParse("50.00"),
			Description: "groceries",
			SplitType:   models.SplitCustom,
			Splits: []models.Split{
				{ParticipantID: people[0].ID, Amount: money.MustParse("30.00")},
				{ParticipantID: people[1].ID, Amount: money.MustParse("19.99")},
			},
		}
		if err := store.CreateIOU(ctx, iou); err == nil {
			t.Fatal("expected error for drifted splits, got nil")
		}

		// Nothing leaked: the write was all-or-nothing.
		ious, err := store.ListIOUs(ctx, tab.ID)
		if err != nil {
			t.Fatalf("ListIOUs failed: %v", err)
		}
		if len(ious) != 0 {
			t.Errorf("got %d ious after rejected write, want 0", len(ious))
		}
	})

	t.Run("CreateIOU rejects empty splits", func(t *testing.T) {
		tab, people := seedTab(t, store, "Ana")

		iou := &models.IOU{
			TabID:       tab.ID,
			PayerID:     people[0].ID,
			Amount:      money.MustParse("10.00"),
			Description: "solo",
			SplitType:   models.SplitCustom,
		}
		if err := store.CreateIOU(ctx, iou); err == nil {
			t.Fatal("expected error for iou without splits, got nil")
		}
	})

	t.Run("settlements round-trip in order", func(t *testing.T) {
		tab, people := seedTab(t, store, "Ana", "Ben")

		first := &models.Settlement{
			TabID: tab.ID, FromID: people[1].ID, ToID: people[0].ID,
			Amount: money.MustParse("10.00"), CreatedAt: 2000,
		}
		second := &models.Settlement{
			TabID: tab.ID, FromID: people[0].ID, ToID: people[1].ID,
			Amount: money.MustParse("2.50"), CreatedAt: 2001,
		}
		for _, s := range []*models.Settlement{first, second} {
			if err := store.CreateSettlement(ctx, s); err != nil {
				t.Fatalf("CreateSettlement failed: %v", err)
			}
		}

		settlements, err := store.ListSettlements(ctx, tab.ID)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(settlements) != 2 {
			t.Fatalf("got %d settlements, want 2", len(settlements))
		}
		if settlements[0].Amount.String() != "10.00" || settlements[1].Amount.String() != "2.50" {
			t.Errorf("settlements out of order: %s then %s", settlements[0].Amount, settlements[1].Amount)
		}
	})
}
