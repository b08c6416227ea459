package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/goasync/internal/testutil"
	gaerrors "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/future"
)

func TestCronNextActivation(t *testing.T) {
	// Every second: the next activation is at most one second away.
	d, err := Cron("* * * * * *", time.UTC)
	testutil.AssertNoError(t, err)

	now := time.Now()
	if d.Deadline().Before(now.Add(-time.Second)) || d.Deadline().After(now.Add(2*time.Second)) {
		t.Errorf("unexpected next activation %v (now %v)", d.Deadline(), now)
	}
}

func TestCronResolvesThroughPolling(t *testing.T) {
	d, err := Cron("* * * * * *", nil)
	testutil.AssertNoError(t, err)

	w := testutil.NewCountingWaker()
	if d.Poll(future.NewContext(w)).IsReady() {
		return // boundary landed exactly on the first poll
	}

	select {
	case <-w.Woken():
	case <-time.After(3 * time.Second):
		t.Fatal("cron delay never fired")
	}
	testutil.AssertEqual(t, d.Poll(future.NewContext(w)).IsReady(), true)
}

func TestCronInvalidExpression(t *testing.T) {
	if _, err := Cron("not a cron", nil); err == nil {
		t.Error("expected parse error")
	}
}

func TestCronEmptyExpression(t *testing.T) {
	_, err := Cron("", nil)
	testutil.AssertError(t, err)
	if !errors.Is(err, gaerrors.ErrInvalidConfiguration) {
		t.Errorf("expected validation error, got %v", err)
	}
}
