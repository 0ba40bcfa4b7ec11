package channel_utils

import (
	"sync"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
)

// MergeChannels fans the given channels into one. The merged channel closes
// once every input channel is drained.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	// Buffered so forwarders can finish even if the consumer stops after
	// the first value it cares about.
	merged := make(chan T, 4*len(channels))

	wg.Add(len(channels))
	for _, c := range channels {
		ch := c
		err := workerPool.Submit(func() {
			defer wg.Done()
			for val := range ch {
				merged <- val
			}
		})
		if err != nil {
			wg.Done()
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}
