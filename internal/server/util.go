package server

import (
	"sync"
)

func PerformConcurrently(count int, fn func(i int)) {
	var wg sync.WaitGroup

	for i := range count {
		wg.Go(func() { fn(i) })
	}

	wg.Wait()
}
