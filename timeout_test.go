// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio_test

import (
	"testing"
	"time"

	"code.hybscloud.com/okio"
)

func TestTimeout_ThrowIfReached(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	to := okio.NewTimeout().SetTimeout(time.Millisecond)

	if err := to.ThrowIfReached(start); err != okio.ErrInterruptedIO {
		t.Errorf("ThrowIfReached = %v, want ErrInterruptedIO", err)
	}
}

func TestTimeout_NoneNeverExpires(t *testing.T) {
	start := time.Now().Add(-24 * time.Hour)
	if err := okio.TimeoutNone.ThrowIfReached(start); err != nil {
		t.Errorf("TimeoutNone.ThrowIfReached = %v, want nil", err)
	}
}

func TestTimeout_DeadlineStopsAtAbsoluteTime(t *testing.T) {
	to := okio.NewTimeout().SetDeadline(time.Now().Add(-time.Second))
	if err := to.ThrowIfReached(time.Now()); err != okio.ErrInterruptedIO {
		t.Errorf("ThrowIfReached with past deadline = %v, want ErrInterruptedIO", err)
	}
}

func TestTimeout_IntersectWithNarrowsTemporarily(t *testing.T) {
	outer := okio.NewTimeout().SetTimeout(time.Hour)
	inner := okio.NewTimeout().SetTimeout(time.Nanosecond)

	called := false
	err := outer.IntersectWith(inner, func() error {
		called = true
		time.Sleep(time.Millisecond)
		return outer.ThrowIfReached(time.Now().Add(-time.Millisecond))
	})
	if !called {
		t.Fatalf("callback was not invoked")
	}
	if err != okio.ErrInterruptedIO {
		t.Errorf("IntersectWith callback err = %v, want ErrInterruptedIO", err)
	}
	if outer.Duration() != time.Hour {
		t.Errorf("outer timeout not restored after IntersectWith: got %v, want %v", outer.Duration(), time.Hour)
	}
}

func TestTimeout_NoneRejectsMutation(t *testing.T) {
	okio.TimeoutNone.SetTimeout(time.Nanosecond)
	okio.TimeoutNone.SetDeadline(time.Now().Add(-time.Hour))

	if d := okio.TimeoutNone.Duration(); d != 0 {
		t.Errorf("TimeoutNone.Duration() after SetTimeout = %v, want 0", d)
	}
	if _, ok := okio.TimeoutNone.Deadline(); ok {
		t.Errorf("TimeoutNone.Deadline() set after SetDeadline, want unset")
	}
	// A past deadline would otherwise make every other caller sharing the
	// singleton see ThrowIfReached fail.
	if err := okio.TimeoutNone.ThrowIfReached(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Errorf("TimeoutNone.ThrowIfReached after attempted mutation = %v, want nil", err)
	}

	okio.TimeoutNone.ClearTimeout()
	okio.TimeoutNone.ClearDeadline()
}

func TestTimeout_ClearTimeoutAndDeadline(t *testing.T) {
	to := okio.NewTimeout().SetTimeout(time.Second).SetDeadline(time.Now().Add(time.Second))
	to.ClearTimeout()
	to.ClearDeadline()
	if to.Duration() != 0 {
		t.Errorf("Duration after ClearTimeout = %v, want 0", to.Duration())
	}
	if _, ok := to.Deadline(); ok {
		t.Errorf("Deadline still set after ClearDeadline")
	}
}
