package jobs

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	queueKey = "coursehub:jobs"

	popTimeout = 2 * time.Second
)

type Type string

const (
	TypeCourseUpdate    Type = "course_update"
	TypeDeactivateUsers Type = "deactivate_inactive_users"
)

// Job is the unit of work pushed through Redis. Payload values survive a
// JSON round trip, so numbers come back as float64.
type Job struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

type Handler func(ctx context.Context, job Job) error

// Dispatcher is the fire-and-forget hand-off used by request handlers.
// Delivery is at-least-once; callers never block on job completion.
type Dispatcher interface {
	Enqueue(ctx context.Context, t Type, payload map[string]interface{}) error
}

// Default is installed at startup. Enqueue is a no-op when it is unset
// so request paths stay usable without a running queue.
var Default Dispatcher

func Enqueue(ctx context.Context, t Type, payload map[string]interface{}) error {
	if Default == nil {
		return nil
	}
	return Default.Enqueue(ctx, t, payload)
}

// Queue is a Redis-backed background job queue: LPUSH on enqueue, a pool
// of workers BRPOPing and dispatching to registered handlers.
type Queue struct {
	client   *redis.Client
	workers  int
	handlers map[Type]Handler

	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func NewQueue(client *redis.Client, workers int) *Queue {
	if workers <= 0 {
		workers = 3
	}
	return &Queue{
		client:   client,
		workers:  workers,
		handlers: make(map[Type]Handler),
		stopCh:   make(chan struct{}),
	}
}

func (q *Queue) Register(t Type, h Handler) {
	q.handlers[t] = h
}

func (q *Queue) Enqueue(ctx context.Context, t Type, payload map[string]interface{}) error {
	job := Job{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, queueKey, data).Err()
}

// Schedule enqueues a job of the given type on a fixed interval until
// the queue stops. It stands in for a cron runner; with several app
// instances the job fires once per instance, so handlers must be safe
// to run more than once per interval.
func (q *Queue) Schedule(interval time.Duration, t Type, payload map[string]interface{}) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-q.stopCh:
				return
			case <-ticker.C:
				if err := q.Enqueue(context.Background(), t, payload); err != nil {
					log.Printf("[Jobs] scheduled %s enqueue failed: %v", t, err)
				}
			}
		}
	}()
}

func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return
	}
	q.running = true
	log.Printf("[Jobs] Starting %d workers", q.workers)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running {
		return
	}
	close(q.stopCh)
	q.running = false
	q.wg.Wait()
	log.Println("[Jobs] All workers stopped")
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	ctx := context.Background()

	for {
		select {
		case <-q.stopCh:
			return
		default:
		}

		res, err := q.client.BRPop(ctx, popTimeout, queueKey).Result()
		if err != nil {
			if err != redis.Nil {
				log.Printf("[Jobs] worker %d: pop error: %v", id, err)
				time.Sleep(time.Second)
			}
			continue
		}
		// res[0] is the key, res[1] the payload
		if len(res) < 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Printf("[Jobs] worker %d: malformed job dropped: %v", id, err)
			continue
		}

		handler, ok := q.handlers[job.Type]
		if !ok {
			log.Printf("[Jobs] worker %d: no handler for %q, job %s dropped", id, job.Type, job.ID)
			continue
		}

		// Handler failures are logged and swallowed: jobs are best-effort
		// side effects and must never surface into a request.
		if err := handler(ctx, job); err != nil {
			log.Printf("[Jobs] worker %d: job %s (%s) failed: %v", id, job.ID, job.Type, err)
		}
	}
}
