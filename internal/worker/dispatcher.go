package worker

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

type sessionQueue struct {
	jobs     []Job
	running  bool // one in-flight job at most; appends stay ordered
	enqueued bool
}

// Dispatcher fans inbound jobs out to the worker pool while keeping each
// session strictly serial: a session's next job is not handed out before the
// previous one finished. Ready sessions are drained in LRU order.
type Dispatcher struct {
	pool     *jobChannelPool
	JobQueue chan Job // interface for outer jobs to get into the dispatcher

	mu        sync.Mutex
	queues    map[string]*sessionQueue
	ready     *list.List // LRU queue storing session ids
	positions map[string]*list.Element

	wakeCh chan struct{}
}

func NewDispatcher(minWorkers, maxWorkers, queueSize int, handler Handler, idleTimeout time.Duration) *Dispatcher {
	d := &Dispatcher{
		queues:    make(map[string]*sessionQueue),
		ready:     list.New(),
		positions: make(map[string]*list.Element),
		JobQueue:  make(chan Job, queueSize),
		wakeCh:    make(chan struct{}, 1),
	}
	d.pool = newJobChannelPool(minWorkers, maxWorkers, idleTimeout, handler, d.finish)

	// Warm up workers so the first requests don't pay the spawn cost.
	for i := 0; i < minWorkers; i++ {
		d.pool.spawnWorker()
	}

	go d.run()
	return d
}

func (d *Dispatcher) run() {
	for {
		if d.dispatchOne() {
			// keep draining, but pick up fresh jobs opportunistically
			select {
			case job := <-d.JobQueue:
				d.enqueueJob(job)
			default:
			}
			continue
		}
		select {
		case job := <-d.JobQueue:
			d.enqueueJob(job)
		case <-d.wakeCh:
		}
	}
}

// CancelSession drops all queued jobs for a session, failing their callers.
func (d *Dispatcher) CancelSession(sessionID string) {
	d.mu.Lock()
	q := d.queues[sessionID]
	var dropped []Job
	if q != nil {
		dropped = q.jobs
		q.jobs = nil
		if !q.running {
			delete(d.queues, sessionID)
		}
	}
	if elem, ok := d.positions[sessionID]; ok {
		d.ready.Remove(elem)
		delete(d.positions, sessionID)
	}
	d.mu.Unlock()

	for _, job := range dropped {
		if job.Result != nil {
			job.Result <- Result{Err: fmt.Errorf("session %s cancelled", sessionID)}
		}
	}
}

func (d *Dispatcher) enqueueJob(job Job) {
	d.mu.Lock()
	defer d.mu.Unlock()

	q := d.queues[job.SessionID]
	if q == nil {
		q = &sessionQueue{}
		d.queues[job.SessionID] = q
	}
	q.jobs = append(q.jobs, job)
	if q.running || q.enqueued {
		// a job is in flight or the session already waits its turn
		return
	}
	q.enqueued = true
	d.positions[job.SessionID] = d.ready.PushBack(job.SessionID)
}

// dispatchOne hands the front session's next job to a worker
func (d *Dispatcher) dispatchOne() bool {
	d.mu.Lock()
	elem := d.ready.Front()
	if elem == nil {
		d.mu.Unlock()
		return false
	}
	sessionID := elem.Value.(string)
	q := d.queues[sessionID]
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	q.running = true
	q.enqueued = false
	d.ready.Remove(elem)
	delete(d.positions, sessionID)
	d.mu.Unlock()

	workerChan := d.pool.acquire()
	debugLog("[dispatcher] assign %s job for session %s", job.Type, sessionID)
	workerChan <- job
	return true
}

// finish is called by the pool when a session's in-flight job completes; the
// session re-enters the LRU if it has more work.
func (d *Dispatcher) finish(sessionID string) {
	d.mu.Lock()
	q := d.queues[sessionID]
	if q == nil {
		d.mu.Unlock()
		return
	}
	q.running = false
	if len(q.jobs) == 0 {
		delete(d.queues, sessionID)
		d.mu.Unlock()
		return
	}
	if !q.enqueued {
		q.enqueued = true
		d.positions[sessionID] = d.ready.PushBack(sessionID)
	}
	d.mu.Unlock()

	select {
	case d.wakeCh <- struct{}{}:
	default:
	}
}
