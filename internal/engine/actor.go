package engine

// Actor serializes engine access for hosts with more than one caller
// (e.g. a UI thread next to the show loop). All mutations funnel through
// a single owning goroutine; the engine itself stays single-threaded.
type Actor struct {
	cmds chan func(*Engine)
	done chan struct{}
}

func NewActor(e *Engine) *Actor {
	a := &Actor{
		cmds: make(chan func(*Engine)),
		done: make(chan struct{}),
	}
	go func() {
		defer close(a.done)
		for cmd := range a.cmds {
			cmd(e)
		}
	}()
	return a
}

// Do runs fn on the owning goroutine and waits for it to finish.
func (a *Actor) Do(fn func(*Engine)) {
	ran := make(chan struct{})
	a.cmds <- func(e *Engine) {
		fn(e)
		close(ran)
	}
	<-ran
}

// Close stops the owning goroutine after draining queued commands.
func (a *Actor) Close() {
	close(a.cmds)
	<-a.done
}
