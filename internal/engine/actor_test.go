package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/phivk/doppelganger/internal/anim"
)

func TestActorSerializesMutations(t *testing.T) {
	defer goleak.VerifyNone(t)

	eng, _, clk := newTestEngine()
	a := NewActor(eng)
	defer a.Close()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				a.Do(func(e *Engine) {
					_ = e.StartAnimation(w%2, anim.Pulse, 100)
					_ = e.Tick()
				})
			}
		}(w)
	}
	wg.Wait()

	a.Do(func(e *Engine) {
		clk.Advance(200)
		require.NoError(t, e.Tick())
		assert.False(t, e.AnyActive())
	})
}

func TestActorCloseStopsOwner(t *testing.T) {
	defer goleak.VerifyNone(t)

	eng, _, _ := newTestEngine()
	a := NewActor(eng)
	ran := false
	a.Do(func(e *Engine) { ran = true })
	a.Close()
	assert.True(t, ran)
}
