package parser

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// Attempts are short-lived objects, a parse call creates thousands of them
// and drops most. Every parse call owns a pool, so no attempt is ever shared
// between goroutines.
type attemptPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

func newAttemptPool() *attemptPool {
	ap := &attemptPool{ctx: context.Background()}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &Result{}, nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.MaxIdle = -1
	config.BlockWhenExhausted = false
	ap.opool = pool.NewObjectPool(ap.ctx, factory, config)
	return ap
}

func (ap *attemptPool) get() *Result {
	o, e := ap.opool.BorrowObject(ap.ctx)
	if e != nil {
		panic("parser: cannot allocate attempt: " + e.Error())
	}
	return o.(*Result)
}

// put returns a finalized attempt; the pool rejects objects it does not consider borrowed.
func (ap *attemptPool) put(r *Result) {
	if e := ap.opool.ReturnObject(ap.ctx, r); e != nil {
		panic("parser: attempt returned to pool twice: " + e.Error())
	}
}

func (ap *attemptPool) active() int {
	return ap.opool.GetNumActive()
}
