package alerting

import (
	"context"
	"errors"
	"testing"

	"ChainPort/internal/chain"
	cperrors "ChainPort/internal/errors"
)

type stubNotifier struct {
	channel Channel
	events  []Event
	fail    bool
}

func (s *stubNotifier) Channel() Channel { return s.channel }

func (s *stubNotifier) Notify(_ context.Context, event Event) error {
	if s.fail {
		return errors.New("boom")
	}
	s.events = append(s.events, event)
	return nil
}

func TestFromErrorFiltersNonAlerting(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if _, ok := FromError(plain, 1, "Ethereum", chain.StatusMaintenance); ok {
		t.Fatal("plain error must not produce an alert event")
	}

	quiet := cperrors.New(cperrors.CodeProbeFailure, "all endpoints down", cperrors.WithAlert(false))
	if _, ok := FromError(quiet, 1, "Ethereum", chain.StatusMaintenance); ok {
		t.Fatal("non-alerting error must not produce an alert event")
	}

	loud := cperrors.New(cperrors.CodeProbeFailure, "all endpoints down",
		cperrors.WithAlert(true), cperrors.WithMetadata("run_id", "r1"))
	event, ok := FromError(loud, 1, "Ethereum", chain.StatusMaintenance)
	if !ok {
		t.Fatal("alerting error must produce an event")
	}
	if event.Code != cperrors.CodeProbeFailure || event.ChainID != 1 || event.ChainName != "Ethereum" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Metadata["run_id"] != "r1" {
		t.Fatalf("metadata lost: %+v", event.Metadata)
	}
}

func TestFanoutBroadcastsAndJoinsErrors(t *testing.T) {
	t.Parallel()

	healthy := &stubNotifier{channel: ChannelSlack}
	broken := &stubNotifier{channel: ChannelDingTalk, fail: true}
	dispatcher := NewFanout(healthy, broken, nil)

	event := Event{Code: cperrors.CodeProbeFailure, ChainID: 137, Status: chain.StatusMaintenance}
	err := dispatcher.Notify(context.Background(), event)
	if err == nil {
		t.Fatal("expected joined error from failing channel")
	}
	if len(healthy.events) != 1 || healthy.events[0].ChainID != 137 {
		t.Fatalf("healthy channel events = %+v", healthy.events)
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	t.Parallel()

	var dispatcher *FanoutDispatcher
	if err := dispatcher.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("nil dispatcher returned %v", err)
	}
}
