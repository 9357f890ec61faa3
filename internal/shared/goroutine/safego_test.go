package goroutine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/consultkit/consultkit/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	SafeGo(logger.NewNopLogger(), "record-tool-run", func() {
		defer wg.Done()
		panic("analytics store unavailable")
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("goroutine did not finish")
	}
}

func TestSafeGo_RunsFunction(t *testing.T) {
	ran := make(chan bool, 1)
	SafeGo(logger.NewNopLogger(), "noop", func() { ran <- true })

	select {
	case v := <-ran:
		assert.True(t, v)
	case <-time.After(2 * time.Second):
		t.Fatal("function was not run")
	}
}
