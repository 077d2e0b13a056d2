package adapthttp

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"habitboard/internal/domain"
)

// identityEvent is the payload of a signed user.created/user.updated
// notification from the auth provider.
type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// handleIdentityWebhook verifies and applies inbound identity events.
// Verification happens before anything else touches the payload; a bad
// signature is logged, dropped, and answered with 400 so the provider
// does not retry forever.
func (s *Server) handleIdentityWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.webhook == nil {
		http.Error(w, "webhook not configured", http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.webhook.Verify(body, r.Header); err != nil {
		log.Printf("identity webhook rejected: %v", err)
		writeDomainError(w, fmt.Errorf("%w: %v", domain.ErrSignature, err))
		return
	}

	var evt identityEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}

	if evt.Type != "user.created" && evt.Type != "user.updated" {
		// Other event types are acknowledged without action.
		writeJSON(w, http.StatusOK, map[string]any{"ignored": evt.Type})
		return
	}

	u := domain.User{
		ID:        evt.Data.ID,
		Username:  evt.Data.Username,
		FirstName: evt.Data.FirstName,
		LastName:  evt.Data.LastName,
	}
	if len(evt.Data.EmailAddresses) > 0 {
		u.Email = evt.Data.EmailAddresses[0].EmailAddress
	}

	if err := s.identity.SyncUser(r.Context(), u); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"synced": u.ID})
}
