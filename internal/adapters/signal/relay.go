package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sboyar/huddle/internal/app"
	"github.com/sboyar/huddle/internal/domain"
)

// Point-to-point relays. Payloads stay opaque json.RawMessage end to end;
// the server never parses an SDP or a candidate.

func (ctl *Controller) handleOffer(id domain.ConnID, data []byte) {
	type offerPayload struct {
		Type     string          `json:"type"`
		TargetID string          `json:"targetId"`
		Offer    json.RawMessage `json:"offer"`
	}
	var p offerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}

	res := ctl.router.RelayOffer(id, domain.ConnID(p.TargetID), p.Offer)
	logRelay("offer", id, p.TargetID, res)
}

func (ctl *Controller) handleAnswer(id domain.ConnID, data []byte) {
	type answerPayload struct {
		Type     string          `json:"type"`
		TargetID string          `json:"targetId"`
		Answer   json.RawMessage `json:"answer"`
	}
	var p answerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}

	res := ctl.router.RelayAnswer(id, domain.ConnID(p.TargetID), p.Answer)
	logRelay("answer", id, p.TargetID, res)
}

func (ctl *Controller) handleCandidate(id domain.ConnID, data []byte) {
	type candidatePayload struct {
		Type      string          `json:"type"`
		TargetID  string          `json:"targetId"`
		Candidate json.RawMessage `json:"candidate"`
	}
	var p candidatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		return
	}

	res := ctl.router.RelayCandidate(id, domain.ConnID(p.TargetID), p.Candidate)
	logRelay("ice-candidate", id, p.TargetID, res)
}

// logRelay records addressing misses. They are expected during the
// discovery window (target may have just disconnected), so debug only.
func logRelay(kind string, from domain.ConnID, target string, res app.RelayOutcome) {
	if res == app.RelayDelivered {
		return
	}
	log.Debug().
		Str("module", "signal").
		Str("kind", kind).
		Str("from", string(from)).
		Str("target", target).
		Str("outcome", res.String()).
		Msg("relay not delivered")
}
