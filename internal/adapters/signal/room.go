package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sboyar/huddle/internal/domain"
)

func (ctl *Controller) handleJoin(id domain.ConnID, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		RoomID   string `json:"roomId"`
		Username string `json:"username"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		return
	}
	// An empty room id would collide with the unjoined sentinel.
	if p.RoomID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("join without room id")
		return
	}
	if !ctl.joins.Allow(id) {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("join rate limited")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", p.RoomID).Msg("join")
	ctl.router.JoinRoom(id, domain.RoomID(p.RoomID), p.Username)
}
