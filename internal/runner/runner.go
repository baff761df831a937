// Package runner fans forcing rows out over a fixed pool of workers.
// Evaluation is pure, so every worker shares one emulator and the pool
// carries no per-worker state.
package runner

import (
	"context"
	"fmt"
	"sync"

	"pondnet/internal/pond"
)

type Config struct {
	Emulator *pond.Emulator
	Workers  int
}

type Pool struct {
	cfg Config
}

func NewPool(cfg Config) (*Pool, error) {
	if cfg.Emulator == nil {
		return nil, fmt.Errorf("emulator is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Pool{cfg: cfg}, nil
}

// Workers reports the configured pool width after defaulting.
func (p *Pool) Workers() int { return p.cfg.Workers }

// EvaluateBatch runs every input through the emulator and returns the
// predictions in input order. The first evaluation error aborts the
// batch; a cancelled context surfaces as that context's error.
func (p *Pool) EvaluateBatch(ctx context.Context, inputs []pond.Inputs) ([]pond.Outputs, error) {
	type job struct {
		idx   int
		input pond.Inputs
	}
	type result struct {
		idx     int
		outputs pond.Outputs
		err     error
	}

	jobs := make(chan job)
	results := make(chan result, len(inputs))

	workerCount := p.cfg.Workers
	if workerCount > len(inputs) {
		workerCount = len(inputs)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				outputs, err := p.cfg.Emulator.Infer(j.input)
				if err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				results <- result{idx: j.idx, outputs: outputs}
			}
		}()
	}

	for i := range inputs {
		jobs <- job{idx: i, input: inputs[i]}
	}
	close(jobs)

	wg.Wait()
	close(results)

	outputs := make([]pond.Outputs, len(inputs))
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		outputs[res.idx] = res.outputs
	}

	return outputs, nil
}
