package notification

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

func sampleMessage() Message {
	return Message{
		BookingID:    7,
		Confirmation: "VC-000007",
		Name:         "Ayesha Khan",
		Email:        "ayesha@example.com",
		Phone:        "03001234567",
		Mobile:       "+923001234567",
		Services:     []string{"Hydra Facial", "Veneers"},
		Date:         "2026-03-12",
		Time:         "14:00",
		TimeLabel:    "2:00 PM",
		ClinicName:   "Vogue Clinic",
		ClinicPhone:  "+92-337-1671167",
	}
}

type fakeChannel struct {
	name     string
	failures int32
	panics   bool
	block    time.Duration

	calls atomic.Int32
	mu    sync.Mutex
	got   []Message
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(ctx context.Context, m Message) error {
	n := f.calls.Add(1)
	if f.panics {
		panic("boom")
	}
	if f.block > 0 {
		select {
		case <-time.After(f.block):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if n <= f.failures {
		return errors.New("collaborator unavailable")
	}
	f.mu.Lock()
	f.got = append(f.got, m)
	f.mu.Unlock()
	return nil
}

func (f *fakeChannel) delivered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.got)
}

type memorySink struct {
	mu  sync.Mutex
	dls []DeadLetter
}

func (s *memorySink) Put(_ context.Context, dl DeadLetter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dls = append(s.dls, dl)
	return nil
}

func (s *memorySink) all() []DeadLetter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DeadLetter(nil), s.dls...)
}
