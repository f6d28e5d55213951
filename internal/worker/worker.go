package worker

import "context"

type Worker struct {
	pool       *jobChannelPool
	jobChannel chan Job
	quit       chan struct{}
}

func NewWorker(pool *jobChannelPool) *Worker {
	return &Worker{
		pool:       pool,
		jobChannel: make(chan Job),
		quit:       make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go func() {
		for {
			select {
			case job := <-w.jobChannel:
				switch job.Type {
				case Chat:
					w.process(job)
					w.pool.markDone(w.jobChannel, job.SessionID)
				case Stop:
					w.pool.retire(w.jobChannel)
					return
				}
			case <-w.quit:
				w.pool.retire(w.jobChannel)
				return
			}
		}
	}()
}

func (w *Worker) Stop() {
	close(w.quit)
}

func (w *Worker) process(job Job) {
	ctx := job.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	reply, err := w.pool.handler.HandleMessage(ctx, job.SessionID, job.Text, job.Profile)
	if job.Result != nil {
		job.Result <- Result{Reply: reply, Err: err}
	}
}
