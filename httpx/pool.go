package httpx

import (
	"net"
	"sync"
)

// workerPool runs a fixed number of goroutines that pull connections off
// a bounded queue. submit blocks while the queue is full.
type workerPool struct {
	jobs chan net.Conn
	wg   sync.WaitGroup
}

func newWorkerPool(workers, queue int, serve func(worker int, c net.Conn)) *workerPool {
	p := &workerPool{jobs: make(chan net.Conn, queue)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer p.wg.Done()
			for c := range p.jobs {
				serve(id, c)
			}
		}(i)
	}
	return p
}

// submit hands c to a worker. It returns false, without taking ownership
// of c, if quit is closed first.
func (p *workerPool) submit(c net.Conn, quit <-chan struct{}) bool {
	select {
	case p.jobs <- c:
		return true
	case <-quit:
		return false
	}
}

// close stops the pool once queued connections are served and waits for
// the workers to exit. submit must not be called afterwards.
func (p *workerPool) close() {
	close(p.jobs)
	p.wg.Wait()
}
