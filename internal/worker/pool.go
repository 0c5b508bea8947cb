package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueuePrint = "jobs:label-print"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PrintJob asks the pool to render one label sheet to PDF.
type PrintJob struct {
	TemplateID string `json:"template_id"`
	ProductID  string `json:"product_id"`
	Code       string `json:"code"`
	Copies     int    `json:"copies"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueuePrint pushes a label-print job to Redis.
func (d *Dispatcher) EnqueuePrint(ctx context.Context, job PrintJob) error {
	return d.enqueue(ctx, QueuePrint, "label-print", job)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers maps job types to their processors. Wired at the composition root
// so workers have full access to infrastructure dependencies.
type Handlers struct {
	Print *PrintWorker
}

// StartPool launches numWorkers goroutines consuming the print queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueuePrint).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *Handlers, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "label-print":
		var pj PrintJob
		if err := json.Unmarshal(job.Payload, &pj); err != nil {
			log.Error().Err(err).Msg("failed to unmarshal print job payload")
			return
		}
		if err := handlers.Print.Handle(ctx, pj); err != nil {
			log.Error().Err(err).Str("code", pj.Code).Msg("print job failed")
		}
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type")
	}
}
