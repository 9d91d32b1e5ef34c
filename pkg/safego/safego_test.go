package safego

import (
	"sync"
	"testing"
)

func TestGoRecoversPanic(t *testing.T) {
	wg := &sync.WaitGroup{}
	wg.Add(1)

	Go(func() {
		defer wg.Done()
		panic("must not take the process down")
	})

	wg.Wait()
}

func TestGoRunsFunction(t *testing.T) {
	wg := &sync.WaitGroup{}
	ran := false

	wg.Add(1)
	Go(func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()

	if !ran {
		t.Fatal("function never ran")
	}
}
