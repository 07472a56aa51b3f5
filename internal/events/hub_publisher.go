package events

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

type broadcaster interface {
	Publish(message []byte) bool
}

// HubPublisher forwards events to connected websocket clients.
type HubPublisher struct {
	hub broadcaster
	log zerolog.Logger
}

func NewHubPublisher(hub broadcaster, log zerolog.Logger) *HubPublisher {
	return &HubPublisher{hub: hub, log: log}
}

func (p *HubPublisher) Publish(_ context.Context, event Event) {
	data, err := json.Marshal(map[string]interface{}{
		"type": event.Type,
		"data": event,
	})
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", event.Type).Msg("events: failed to marshal event")
		return
	}
	if !p.hub.Publish(data) {
		p.log.Warn().Str("event_type", event.Type).Msg("events: websocket broadcast queue full, event dropped")
	}
}
