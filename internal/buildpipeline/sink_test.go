package buildpipeline

import (
	"errors"
	"testing"
)

func TestChannelSinkForwards(t *testing.T) {
	ch := make(chan Event, 1)
	Emit(ChannelSink{Ch: ch}, Event{File: "a.swift", Stage: StageParse, Status: StatusWorking})
	got := <-ch
	if got.File != "a.swift" || got.Stage != StageParse {
		t.Fatalf("unexpected event %+v", got)
	}
	ChannelSink{}.OnEvent(Event{}) // nil channel is ignored
	Emit(nil, Event{})
}

func TestRecordingSink(t *testing.T) {
	var s RecordingSink
	s.OnEvent(Event{File: "a", Status: StatusQueued})
	s.OnEvent(Event{File: "a", Status: StatusError, Err: errors.New("boom")})
	ev := s.Events()
	if len(ev) != 2 || ev[1].Err == nil {
		t.Fatalf("unexpected events %+v", ev)
	}
}

func TestStatusFinished(t *testing.T) {
	tests := map[Status]bool{
		StatusQueued:  false,
		StatusWorking: false,
		StatusDone:    true,
		StatusCached:  true,
		StatusError:   true,
	}
	for st, want := range tests {
		if got := st.Finished(); got != want {
			t.Errorf("%s.Finished() = %v, want %v", st, got, want)
		}
	}
	if len(Stages()) != 4 {
		t.Fatalf("stages = %v", Stages())
	}
}
