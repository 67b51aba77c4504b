package pool

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGo_Values(t *testing.T) {
	p := New(2)
	defer p.Close()

	// Three bound tasks consumed in submission order each yield their
	// own value.
	futures := make([]*Future[int], 0, 3)
	for _, v := range []int{7, 8, 9} {
		v := v
		futures = append(futures, Go(p, func() int { return v }))
	}

	for i, expected := range []int{7, 8, 9} {
		got, err := futures[i].Wait()
		if err != nil {
			t.Fatalf("future %d: unexpected error: %v", i, err)
		}
		if got != expected {
			t.Errorf("future %d: expected %d, got %d", i, expected, got)
		}
	}

	// Wait after consumption is a no-op on a quiescent pool.
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on a quiescent pool")
	}
}

func TestGo_ReadyExactlyOnceAfterReturn(t *testing.T) {
	p := New(1)
	defer p.Close()

	started := make(chan struct{})
	release := make(chan struct{})

	f := Go(p, func() int {
		close(started)
		<-release
		return 42
	})

	<-started
	if f.Ready() {
		t.Error("future ready while the callable is still running")
	}

	close(release)

	v, err := f.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
	if !f.Ready() {
		t.Error("future not ready after Wait returned")
	}

	// Repeated consumption observes the same value.
	v, err = f.Get(context.Background())
	if err != nil || v != 42 {
		t.Errorf("second Get: expected (42, nil), got (%d, %v)", v, err)
	}
}

func TestGoErr(t *testing.T) {
	p := New(1)
	defer p.Close()

	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		fn        func() (string, error)
		wantValue string
		wantErr   error
	}{
		{
			name:      "success",
			fn:        func() (string, error) { return "ok", nil },
			wantValue: "ok",
		},
		{
			name:    "failure",
			fn:      func() (string, error) { return "", errBoom },
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GoErr(p, tt.fn)
			v, err := f.Wait()

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if v != tt.wantValue {
				t.Errorf("expected value %q, got %q", tt.wantValue, v)
			}
		})
	}
}

func TestTrack_Completion(t *testing.T) {
	p := New(2)
	defer p.Close()

	var ran bool
	f := p.Track(func() {
		time.Sleep(5 * time.Millisecond)
		ran = true
	})

	if _, err := f.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("future ready before the callable returned")
	}
}

func TestGo_PanicCapture(t *testing.T) {
	p := New(1, WithLogger(discardLogger()))
	defer p.Close()

	f := Go(p, func() int {
		panic("kaput")
	})

	_, err := f.Wait()

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if pe.Value != "kaput" {
		t.Errorf("expected panic value %q, got %v", "kaput", pe.Value)
	}

	// The worker survives a captured panic.
	v, err := Go(p, func() int { return 1 }).Wait()
	if err != nil || v != 1 {
		t.Errorf("pool unusable after captured panic: (%d, %v)", v, err)
	}
}

func TestTrack_PanicCapture(t *testing.T) {
	p := New(1, WithLogger(discardLogger()))
	defer p.Close()

	f := p.Track(func() {
		panic(errors.New("wrapped"))
	})

	_, err := f.Wait()

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
}

func TestNilCallable_NeverReady(t *testing.T) {
	p := New(1, WithLogger(discardLogger()))
	defer p.Close()

	f := Go[int](p, nil)

	if f.Ready() {
		t.Error("never-ready future reports ready")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Get(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	// Nothing was assigned to a worker.
	p.Wait()
	if got := p.Stats().Submitted; got != 0 {
		t.Errorf("expected 0 accepted submissions, got %d", got)
	}
	if got := p.Stats().Dropped; got != 1 {
		t.Errorf("expected 1 dropped submission, got %d", got)
	}
}

func TestFuture_GetContextCancellation(t *testing.T) {
	p := New(1)
	defer p.Close()

	release := make(chan struct{})
	f := Go(p, func() int {
		<-release
		return 1
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Get(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	// The task itself is unaffected by the abandoned Get.
	close(release)
	if v, err := f.Wait(); err != nil || v != 1 {
		t.Errorf("expected (1, nil) after release, got (%d, %v)", v, err)
	}
}

func TestFuture_Done(t *testing.T) {
	p := New(1)
	defer p.Close()

	f := p.Track(func() {})

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("Done channel never closed")
	}

	var never Future[int]
	if never.Done() != nil {
		t.Error("zero future must expose a nil Done channel")
	}
}

func TestPanicError_Message(t *testing.T) {
	err := &PanicError{Value: "detail"}
	if got := err.Error(); got != "task panicked: detail" {
		t.Errorf("unexpected message: %q", got)
	}
}
