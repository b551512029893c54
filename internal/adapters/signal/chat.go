package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sboyar/huddle/internal/app"
	"github.com/sboyar/huddle/internal/domain"
)

// handleMessage relays a plain-text message to the sender's room. A
// message from a peer with no room is dropped: there is nothing to
// address it to.
func (ctl *Controller) handleMessage(id domain.ConnID, data []byte) {
	type messagePayload struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		return
	}

	if res := ctl.router.SendMessage(id, p.Message); res != app.RelayDelivered {
		log.Debug().Str("module", "signal").Str("conn", string(id)).Str("outcome", res.String()).Msg("message dropped")
	}
}
