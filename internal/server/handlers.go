package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mmynk/tabby/internal/ledger"
	"github.com/mmynk/tabby/internal/middleware"
	"github.com/mmynk/tabby/internal/models"
	"github.com/mmynk/tabby/internal/money"
	"github.com/mmynk/tabby/internal/service"
	"github.com/mmynk/tabby/internal/session"
	"github.com/mmynk/tabby/internal/storage"
)

// cookieTTL matches the session token duration handed to the manager in
// main; the raw access token in the store never expires.
const cookieTTL = 30 * 24 * time.Hour

type tabPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	InviteCode string `json:"invite_code"`
}

type participantPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type balancePayload struct {
	ParticipantID   string       `json:"participant_id"`
	ParticipantName string       `json:"participant_name"`
	NetBalance      money.Amount `json:"net_balance"`
}

type transferPayload struct {
	FromID   string       `json:"from_id"`
	FromName string       `json:"from_name"`
	ToID     string       `json:"to_id"`
	ToName   string       `json:"to_name"`
	Amount   money.Amount `json:"amount"`
}

type splitPayload struct {
	ParticipantID string       `json:"participant_id"`
	Amount        money.Amount `json:"amount"`
}

func toTabPayload(t *models.Tab) tabPayload {
	return tabPayload{ID: t.ID, Name: t.Name, Currency: t.Currency, InviteCode: t.InviteCode}
}

func toTransferPayloads(transfers []ledger.Transfer) []transferPayload {
	out := make([]transferPayload, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, transferPayload{
			FromID:   t.FromID,
			FromName: t.FromName,
			ToID:     t.ToID,
			ToName:   t.ToName,
			Amount:   t.Amount,
		})
	}
	return out
}

type createTabRequest struct {
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	CreatorName string `json:"creator_name"`
}

func (s *Server) handleCreateTab(w http.ResponseWriter, r *http.Request) {
	var req createTabRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tab, creator, err := s.tabs.CreateTab(r.Context(), req.Name, req.Currency, req.CreatorName)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{"tab": toTabPayload(tab)}
	if creator != nil {
		if err := s.issueCredentials(w, creator, resp); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

type joinTabRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleJoinTab(w http.ResponseWriter, r *http.Request) {
	var req joinTabRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tab, p, err := s.tabs.JoinTab(r.Context(), r.PathValue("code"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{"tab": toTabPayload(tab)}
	if err := s.issueCredentials(w, p, resp); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// issueCredentials attaches the participant's credentials to the response
// body and sets the browser cookie. The raw access token is the durable
// credential; the session token spares the store a lookup per request while
// it lasts.
func (s *Server) issueCredentials(w http.ResponseWriter, p *models.Participant, resp map[string]any) error {
	sessionToken, err := s.sessions.Issue(p)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookie,
		Value:    p.AccessToken,
		Path:     "/",
		MaxAge:   int(cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	resp["participant"] = participantPayload{ID: p.ID, Name: p.Name}
	resp["access_token"] = p.AccessToken
	resp["session_token"] = sessionToken
	return nil
}

// tabForCaller resolves the invite code and checks the authenticated caller
// belongs to that tab. A caller on a different tab gets the same 404 as a
// bad code, so codes cannot be probed with a foreign credential.
func (s *Server) tabForCaller(r *http.Request) (*models.Tab, *models.Participant, error) {
	caller := middleware.Caller(r.Context())
	if caller == nil {
		return nil, nil, session.ErrMissingToken
	}

	tab, err := s.tabs.GetTabByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		return nil, nil, err
	}
	if caller.TabID != tab.ID {
		return nil, nil, fmt.Errorf("tab %s: %w", r.PathValue("code"), storage.ErrNotFound)
	}
	return tab, caller, nil
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	tab, caller, err := s.tabForCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	participants, err := s.tabs.ListParticipants(r.Context(), tab.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	balances, err := s.ledger.GetNetBalances(r.Context(), tab.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	transfers, err := s.ledger.PlanSettlement(r.Context(), tab.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	participantsOut := make([]participantPayload, 0, len(participants))
	for _, p := range participants {
		participantsOut = append(participantsOut, participantPayload{ID: p.ID, Name: p.Name})
	}
	balancesOut := make([]balancePayload, 0, len(balances))
	for _, b := range balances {
		balancesOut = append(balancesOut, balancePayload{
			ParticipantID:   b.ParticipantID,
			ParticipantName: b.ParticipantName,
			NetBalance:      b.Net,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tab":                    toTabPayload(tab),
		"current_participant_id": caller.ID,
		"participants":           participantsOut,
		"balances":               balancesOut,
		"edges":                  toTransferPayloads(transfers),
	})
}

type recordIOURequest struct {
	Amount      money.Amount   `json:"amount"`
	Description string         `json:"description"`
	SplitType   string         `json:"split_type"`
	Splits      []splitPayload `json:"splits"`
}

func (s *Server) handleRecordIOU(w http.ResponseWriter, r *http.Request) {
	tab, caller, err := s.tabForCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req recordIOURequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var custom map[string]money.Amount
	if len(req.Splits) > 0 {
		custom = make(map[string]money.Amount, len(req.Splits))
		for _, sp := range req.Splits {
			custom[sp.ParticipantID] = sp.Amount
		}
	}

	iou, err := s.ledger.RecordObligation(r.Context(), tab.ID, caller.ID, req.Amount, req.Description, models.SplitType(req.SplitType), custom)
	if err != nil {
		writeError(w, err)
		return
	}

	splitsOut := make([]splitPayload, 0, len(iou.Splits))
	for _, sp := range iou.Splits {
		splitsOut = append(splitsOut, splitPayload{ParticipantID: sp.ParticipantID, Amount: sp.Amount})
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          iou.ID,
		"payer_id":    iou.PayerID,
		"amount":      iou.Amount,
		"description": iou.Description,
		"split_type":  string(iou.SplitType),
		"splits":      splitsOut,
	})
}

type settleRequest struct {
	ToID   string       `json:"to_id"`
	Amount money.Amount `json:"amount"`
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	tab, caller, err := s.tabForCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req settleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	settlement, err := s.ledger.RecordSettlement(r.Context(), tab.ID, caller.ID, req.ToID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      settlement.ID,
		"from_id": settlement.FromID,
		"to_id":   settlement.ToID,
		"amount":  settlement.Amount,
	})
}

type remindRequest struct {
	ParticipantID string `json:"participant_id"`
}

// handleRemind generates a nudge for a debt the named participant owes the
// caller, per the current settlement plan. The debt must exist as a plan
// edge pointing at the caller.
func (s *Server) handleRemind(w http.ResponseWriter, r *http.Request) {
	tab, caller, err := s.tabForCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req remindRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ParticipantID == "" {
		writeError(w, fmt.Errorf("%w: participant_id is required", service.ErrValidation))
		return
	}

	transfers, err := s.ledger.PlanSettlement(r.Context(), tab.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	var edge *ledger.Transfer
	for i := range transfers {
		if transfers[i].FromID == req.ParticipantID && transfers[i].ToID == caller.ID {
			edge = &transfers[i]
			break
		}
	}
	if edge == nil {
		writeError(w, fmt.Errorf("debt from %s to caller: %w", req.ParticipantID, storage.ErrNotFound))
		return
	}

	text := s.reminders.Reminder(r.Context(), edge.FromName, edge.ToName, edge.Amount, tab.Currency)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": text,
		"from_id": edge.FromID,
		"to_id":   edge.ToID,
		"amount":  edge.Amount,
	})
}
