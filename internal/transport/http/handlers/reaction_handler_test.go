package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/domain/model"
	reactsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/reactions"
)

type fakeReactionStore struct {
	reactions []model.Reaction
}

func (s *fakeReactionStore) Create(_ context.Context, reaction model.Reaction) (model.Reaction, error) {
	reaction.ID = int64(len(s.reactions) + 1)
	reaction.CreatedAt = time.Now().UTC()
	s.reactions = append(s.reactions, reaction)
	return reaction, nil
}

func reactionRequest(kind string) *http.Request {
	body := strings.NewReader(`{"target_id":"video-1","kind":"` + kind + `"}`)
	return httptest.NewRequest(http.MethodPost, "/v1/reactions", body)
}

func TestReactionHandlerConsumesGuestQuota(t *testing.T) {
	store := &fakeReactionStore{}
	h := NewReactionHandler(newTestGate(), reactsvc.NewService(store, nil), "sign in")

	for i := 1; i <= 5; i++ {
		rr := httptest.NewRecorder()
		h.Handle(rr, asGuest(reactionRequest("like"), "device-react"))
		if rr.Code != http.StatusOK {
			t.Fatalf("reaction %d: status %d body %s", i, rr.Code, rr.Body.String())
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		trial := body["trial"].(map[string]interface{})
		if int(trial["reactionsRemaining"].(float64)) != 5-i {
			t.Fatalf("reactionsRemaining = %v after reaction %d", trial["reactionsRemaining"], i)
		}
	}

	rr := httptest.NewRecorder()
	h.Handle(rr, asGuest(reactionRequest("like"), "device-react"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("sixth reaction: status %d, want %d", rr.Code, http.StatusForbidden)
	}
	if len(store.reactions) != 5 {
		t.Fatalf("stored reactions = %d, want 5", len(store.reactions))
	}
}

func TestReactionHandlerRejectsUnknownKind(t *testing.T) {
	h := NewReactionHandler(newTestGate(), reactsvc.NewService(&fakeReactionStore{}, nil), "")

	rr := httptest.NewRecorder()
	h.Handle(rr, asUser(reactionRequest("boost"), 2))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestReactionHandlerRequiresTarget(t *testing.T) {
	h := NewReactionHandler(newTestGate(), reactsvc.NewService(&fakeReactionStore{}, nil), "")

	body := strings.NewReader(`{"target_id":"","kind":"like"}`)
	req := asGuest(httptest.NewRequest(http.MethodPost, "/v1/reactions", body), "device-react-2")
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
