package ledger

import (
	"errors"
	"testing"

	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/money"
)

func participant(id, name string) *models.Participant {
	return &models.Participant{ID: id, TabID: "tab-1", Name: name}
}

func evenIOU(id, payerID, total string, debtorIDs ...string) *models.IOU {
	amount := money.MustParse(total)
	shares, err := EvenSplit(amount, len(debtorIDs))
	if err != nil {
		panic(err)
	}
	iou := &models.IOU{
		ID:        id,
		TabID:     "tab-1",
		PayerID:   payerID,
		Amount:    amount,
		SplitType: models.SplitEven,
	}
	for i, debtorID := range debtorIDs {
		iou.Splits = append(iou.Splits, models.Split{
			ID:            id + "-s" + debtorID,
			IOUID:         id,
			ParticipantID: debtorID,
			Amount:        shares[i],
		})
	}
	return iou
}

func TestNetBalances(t *testing.T) {
	p1 := participant("p1", "Ana")
	p2 := participant("p2", "Ben")
	p3 := participant("p3", "Kim")
	people := []*models.Participant{p1, p2, p3}

	t.Run("even obligation credits payer and debits everyone", func(t *testing.T) {
		// Ana pays 30.00 for lunch split three ways.
		balances, err := NetBalances(people, []*models.IOU{
			evenIOU("iou-1", "p1", "30.00", "p1", "p2", "p3"),
		}, nil)
		if err != nil {
			t.Fatalf("NetBalances failed: %v", err)
		}

		want := map[string]string{"p1": "20.00", "p2": "-10.00", "p3": "-10.00"}
		assertNets(t, balances, want)
	})

	t.Run("settlement moves both parties toward zero", func(t *testing.T) {
		balances, err := NetBalances(people, []*models.IOU{
			evenIOU("iou-1", "p1", "30.00", "p1", "p2", "p3"),
		}, []*models.Settlement{
			{ID: "s1", TabID: "tab-1", FromID: "p2", ToID: "p1", Amount: money.MustParse("10.00")},
		})
		if err != nil {
			t.Fatalf("NetBalances failed: %v", err)
		}

		want := map[string]string{"p1": "10.00", "p2": "0.00", "p3": "-10.00"}
		assertNets(t, balances, want)
	})

	t.Run("conservation holds across mixed activity", func(t *testing.T) {
		balances, err := NetBalances(people, []*models.IOU{
			evenIOU("iou-1", "p1", "30.00", "p1", "p2", "p3"),
			evenIOU("iou-2", "p2", "10.00", "p1", "p2", "p3"),
			evenIOU("iou-3", "p3", "99.99", "p1", "p2", "p3"),
		}, []*models.Settlement{
			{ID: "s1", FromID: "p2", ToID: "p3", Amount: money.MustParse("5.00")},
			{ID: "s2", FromID: "p1", ToID: "p2", Amount: money.MustParse("1.23")},
		})
		if err != nil {
			t.Fatalf("NetBalances failed: %v", err)
		}

		sum := money.Zero
		for _, b := range balances {
			sum = sum.Add(b.Net)
		}
		if !sum.IsZero() {
			t.Errorf("balances sum to %s, want 0.00", sum)
		}
	})

	t.Run("output follows participant order with zeros included", func(t *testing.T) {
		balances, err := NetBalances(people, nil, nil)
		if err != nil {
			t.Fatalf("NetBalances failed: %v", err)
		}
		if len(balances) != 3 {
			t.Fatalf("got %d balances, want 3", len(balances))
		}
		for i, wantID := range []string{"p1", "p2", "p3"} {
			if balances[i].ParticipantID != wantID {
				t.Errorf("balances[%d] = %s, want %s", i, balances[i].ParticipantID, wantID)
			}
			if !balances[i].Net.IsZero() {
				t.Errorf("balances[%d].Net = %s, want 0.00", i, balances[i].Net)
			}
		}
	})

	t.Run("drifted splits surface an integrity error", func(t *testing.T) {
		iou := evenIOU("iou-1", "p1", "30.00", "p1", "p2", "p3")
		iou.Splits[0].Amount = money.MustParse("5.00") // sum now 25.00

		_, err := NetBalances(people, []*models.IOU{iou}, nil)
		if !errors.Is(err, ErrIntegrity) {
			t.Errorf("error = %v, want ErrIntegrity", err)
		}
	})

	t.Run("split naming an unknown participant surfaces an integrity error", func(t *testing.T) {
		iou := evenIOU("iou-1", "p1", "30.00", "p1", "p2", "ghost")

		_, err := NetBalances(people, []*models.IOU{iou}, nil)
		if !errors.Is(err, ErrIntegrity) {
			t.Errorf("error = %v, want ErrIntegrity", err)
		}
	})

	t.Run("settlement naming an unknown participant surfaces an integrity error", func(t *testing.T) {
		_, err := NetBalances(people, nil, []*models.Settlement{
			{ID: "s1", FromID: "ghost", ToID: "p1", Amount: money.MustParse("1.00")},
		})
		if !errors.Is(err, ErrIntegrity) {
			t.Errorf("error = %v, want ErrIntegrity", err)
		}
	})
}

func assertNets(t *testing.T, balances []Balance, want map[string]string) {
	t.Helper()
	if len(balances) != len(want) {
		t.Fatalf("got %d balances, want %d", len(balances), len(want))
	}
	for _, b := range balances {
		if b.Net.String() != want[b.ParticipantID] {
			t.Errorf("%s net = %s, want %s", b.ParticipantID, b.Net, want[b.ParticipantID])
		}
	}
}
