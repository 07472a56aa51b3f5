package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

type fakeHub struct {
	messages [][]byte
	full     bool
}

func (f *fakeHub) Publish(message []byte) bool {
	if f.full {
		return false
	}
	f.messages = append(f.messages, message)
	return true
}

func sampleEvent() Event {
	return Event{
		Type:        TypeRequestApproved,
		RequestID:   "7d1e0c4e-0000-0000-0000-000000000001",
		RequestName: "REQ-20260105-00001",
		Status:      "approved",
		ActorID:     "manager",
		OccurredAt:  time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestNATSPublisher_Publish(t *testing.T) {
	conn := &fakeConn{}
	p := NewNATSPublisher(conn, "approvals", zerolog.Nop())

	p.Publish(context.Background(), sampleEvent())

	require.Len(t, conn.subjects, 1)
	assert.Equal(t, "approvals.approval_request_approved", conn.subjects[0])

	var decoded Event
	require.NoError(t, json.Unmarshal(conn.payloads[0], &decoded))
	assert.Equal(t, "REQ-20260105-00001", decoded.RequestName)
	assert.Equal(t, "approved", decoded.Status)
}

func TestNATSPublisher_ErrorIsSwallowed(t *testing.T) {
	conn := &fakeConn{err: errors.New("no responders")}
	p := NewNATSPublisher(conn, "approvals", zerolog.Nop())

	assert.NotPanics(t, func() { p.Publish(context.Background(), sampleEvent()) })
}

func TestNATSPublisher_NilConn(t *testing.T) {
	p := NewNATSPublisher(nil, "approvals", zerolog.Nop())
	assert.NotPanics(t, func() { p.Publish(context.Background(), sampleEvent()) })
}

func TestHubPublisher_Publish(t *testing.T) {
	hub := &fakeHub{}
	p := NewHubPublisher(hub, zerolog.Nop())

	p.Publish(context.Background(), sampleEvent())

	require.Len(t, hub.messages, 1)
	var envelope struct {
		Type string `json:"type"`
		Data Event  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(hub.messages[0], &envelope))
	assert.Equal(t, TypeRequestApproved, envelope.Type)
	assert.Equal(t, "REQ-20260105-00001", envelope.Data.RequestName)
}

func TestMulti(t *testing.T) {
	hub := &fakeHub{}
	conn := &fakeConn{}

	m := Multi(NewHubPublisher(hub, zerolog.Nop()), nil, NewNATSPublisher(conn, "x", zerolog.Nop()))
	m.Publish(context.Background(), sampleEvent())

	assert.Len(t, hub.messages, 1)
	assert.Len(t, conn.subjects, 1)
}
