package probe

import (
	"context"
	"fmt"
	"sync"

	"wpcheck/internal/classify"
	"wpcheck/internal/output"
)

// ProcessDomains fans the domain list out to a fixed pool of workers.
// At most concurrency probes are in flight at any time; outcomes arrive
// on the returned channel in completion order, each one independently
// complete the moment it is sent.
func (p *Prober) ProcessDomains(ctx context.Context, domains []string, concurrency int) <-chan output.Outcome {
	results := make(chan output.Outcome, len(domains))
	domainChan := make(chan string, len(domains))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go p.worker(ctx, domainChan, results, &wg)
	}

	go func() {
		defer close(domainChan)
		for _, domain := range domains {
			select {
			case domainChan <- domain:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// worker pulls domains from the channel until it is drained or the
// context is cancelled.
func (p *Prober) worker(ctx context.Context, domains <-chan string, results chan<- output.Outcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for domain := range domains {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if outcome, ok := p.safeProbe(ctx, domain); ok {
			results <- outcome
		}
	}
}

// safeProbe shields the batch from a defect in a single domain's probe:
// a panic becomes an unreachable outcome instead of taking down the
// pool.
func (p *Prober) safeProbe(ctx context.Context, domain string) (o output.Outcome, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.config.Logger.Error("probe panicked",
				"domain", domain,
				"panic", r,
			)
			o = output.Outcome{
				Domain: domain,
				Status: classify.StatusUnreachable,
				Notes:  fmt.Sprintf("internal_error: %v", r),
			}
			ok = true
		}
	}()

	return p.ProbeDomain(ctx, domain)
}
