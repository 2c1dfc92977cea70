package meta

import (
	"sync"

	"github.com/coregx/ibmatch/prefilter"
	"github.com/coregx/ibmatch/romaji"
)

// SearchState holds per-search mutable state for thread-safe concurrent searches.
// This struct should be obtained from a sync.Pool to enable safe concurrent usage
// of the same compiled Engine from multiple goroutines.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state for search operations
//
// Thread safety: Each goroutine must use its own SearchState instance.
// The SearchState itself is NOT thread-safe - it must not be shared between goroutines.
type SearchState struct {
	// memo holds the best completion of every (column, pattern index,
	// language) state. Columns live in a ring of window slots; cols records
	// which haystack column each slot currently holds.
	memo []int
	cols []int

	// romaji caches the romaji candidates of the column held by each slot.
	romaji     [][]romaji.Candidate
	romajiDone []bool

	// tracker retires the prefilter when candidates are too dense. Nil when
	// the engine has no prefilter.
	tracker *prefilter.Tracker
}

// newSearchState creates a new SearchState with pre-allocated buffers sized
// for e.
func newSearchState(e *Engine) *SearchState {
	state := &SearchState{
		memo: make([]int, e.window*len(e.pattern)*numLangs),
		cols: make([]int, e.window),
	}
	if e.romaji != nil {
		state.romaji = make([][]romaji.Candidate, e.window)
		state.romajiDone = make([]bool, e.window)
	}
	if e.prefilter != nil {
		state.tracker = prefilter.NewTracker(e.prefilter)
	}
	state.reset()
	return state
}

// reset prepares the SearchState for reuse. Memo slots are cleared lazily
// when their column is first touched.
func (s *SearchState) reset() {
	for i := range s.cols {
		s.cols[i] = -1
	}
	for i := range s.romaji {
		s.romaji[i] = nil
	}
	if s.tracker != nil {
		s.tracker.Reset()
	}
}

// searchStatePool manages a pool of SearchState instances for thread-safe reuse.
type searchStatePool struct {
	pool sync.Pool
}

// newSearchStatePool creates a pool configured for the given engine.
func newSearchStatePool(e *Engine) *searchStatePool {
	p := &searchStatePool{}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(e)
		},
	}
	return p
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}

func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}
