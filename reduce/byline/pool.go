package byline

import "sync"

// partial is the contribution of a single frame.
type partial struct {
	acc    Accumulators
	report Report
}

// partialPool hands out zeroed per-frame partials so that steady-state
// reductions do not allocate per frame.
type partialPool struct {
	bins int
	pool sync.Pool
}

func newPartialPool(bins int) *partialPool {
	p := &partialPool{bins: bins}
	p.pool.New = func() any {
		return &partial{acc: *NewAccumulators(bins)}
	}
	return p
}

func (p *partialPool) get() *partial {
	part := p.pool.Get().(*partial)
	part.acc.Reset()
	part.report = Report{}
	return part
}

func (p *partialPool) put(part *partial) {
	if part == nil {
		return
	}
	p.pool.Put(part)
}
