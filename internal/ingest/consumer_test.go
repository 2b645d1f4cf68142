package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taxidash/internal/domain"
)

type fakeImporter struct {
	calls int
	got   []domain.TripRecord
	err   error
}

func (f *fakeImporter) ImportRecords(ctx context.Context, trips []domain.TripRecord) (*domain.ImportResult, error) {
	f.calls++
	f.got = append(f.got, trips...)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ImportResult{BatchID: "batch-1", Received: len(trips), Imported: len(trips)}, nil
}

func TestConsumer_Handle(t *testing.T) {
	valid := `{"id": 1, "pickup_time": "2023-05-15 08:30:00", "dropoff_time": "2023-05-15 08:45:00", "trip_distance": 2.5, "fare_amount": 12.5, "payment_type": "credit"}`

	testCases := []struct {
		name      string
		body      string
		importErr error
		want      Outcome
		wantCalls int
	}{
		{"valid record", valid, nil, OutcomeAck, 1},
		{"valid array", "[" + valid + "," + valid + "]", nil, OutcomeAck, 1},
		{"malformed json", "{oops", nil, OutcomeDrop, 0},
		{"only invalid records", `[{"id": 1}]`, nil, OutcomeDrop, 0},
		{"storage failure", valid, errors.New("db down"), OutcomeRequeue, 1},
		{"importer busy", valid, ErrImportBusy, OutcomeRetry, 1},
		{"importer busy wrapped", valid, fmt.Errorf("store: %w", ErrImportBusy), OutcomeRetry, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			importer := &fakeImporter{err: tc.importErr}
			consumer := NewConsumer(nil, ConsumerConfig{Queue: "trips"}, importer, nil)

			got := consumer.Handle(context.Background(), []byte(tc.body))

			if got != tc.want {
				t.Errorf("expected outcome %d, got %d", tc.want, got)
			}
			if importer.calls != tc.wantCalls {
				t.Errorf("expected %d import calls, got %d", tc.wantCalls, importer.calls)
			}
		})
	}
}

func TestConsumer_HandleSkipsInvalidRecordsInBatch(t *testing.T) {
	body := `[
		{"id": 1, "pickup_time": "2023-05-15 08:30:00", "dropoff_time": "2023-05-15 08:45:00", "trip_distance": 2.5, "fare_amount": 12.5},
		{"id": 2, "pickup_time": "bogus", "dropoff_time": "2023-05-15 08:45:00", "trip_distance": 2.5, "fare_amount": 12.5}
	]`
	importer := &fakeImporter{}
	consumer := NewConsumer(nil, ConsumerConfig{Queue: "trips"}, importer, nil)

	if got := consumer.Handle(context.Background(), []byte(body)); got != OutcomeAck {
		t.Fatalf("expected ack, got %d", got)
	}
	if len(importer.got) != 1 || importer.got[0].ID != 1 {
		t.Errorf("expected only trip 1 to be imported, got %+v", importer.got)
	}
}

func TestConsumer_RunWithoutConnection(t *testing.T) {
	consumer := NewConsumer(nil, ConsumerConfig{Queue: "trips"}, &fakeImporter{}, nil)

	if err := consumer.Run(context.Background()); err == nil {
		t.Error("expected an error without a connection")
	}
}

func TestConsumer_Backoff(t *testing.T) {
	consumer := NewConsumer(nil, ConsumerConfig{Queue: "trips", RetryDelay: 20 * time.Millisecond}, &fakeImporter{}, nil)

	start := time.Now()
	consumer.backoff(context.Background())
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected to wait the retry delay, waited %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	consumer = NewConsumer(nil, ConsumerConfig{Queue: "trips", RetryDelay: time.Hour}, &fakeImporter{}, nil)

	done := make(chan struct{})
	go func() {
		consumer.backoff(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected backoff to stop when the context is cancelled")
	}
}

func TestNewConsumer_DefaultRetryDelay(t *testing.T) {
	consumer := NewConsumer(nil, ConsumerConfig{Queue: "trips"}, &fakeImporter{}, nil)

	if consumer.cfg.RetryDelay != DefaultRetryDelay {
		t.Errorf("expected default retry delay, got %v", consumer.cfg.RetryDelay)
	}
}
