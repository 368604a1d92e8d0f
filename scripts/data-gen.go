// Basic script that drives churn-heavy PUT/DEL traffic against a
// running caskyd, useful for generating a log with a realistic mix of
// live keys, superseded versions, and tombstones for compaction tests.
package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/casky-db/casky/client"
)

const (
	concurrency = 6

	totalKeys   = 100
	totalValues = 100

	keysPerCycleWrite  = 20
	keysPerCycleDelete = 10
	cyclesPerWorker    = 5000

	sleepBetweenCycles = 10 * time.Millisecond

	progressEvery = 500
)

func main() {
	start := time.Now()
	fmt.Println("Starting Casky churn-heavy load generator")

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(id, keys, values)
		}(i)
	}

	wg.Wait()
	fmt.Printf("Load finished in %v\n", time.Since(start))
}

func runWorker(id int, keys []string, values []string) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	c, err := client.Connect()
	if err != nil {
		fmt.Printf("[worker %d] connect error: %v\n", id, err)
		return
	}
	defer c.Close()

	for cycle := 1; cycle <= cyclesPerWorker; cycle++ {
		for i := 0; i < keysPerCycleWrite; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := c.Put(key, val); err != nil {
				fmt.Printf("[worker %d] PUT error: %v\n", id, err)
				return
			}
		}

		for i := 0; i < keysPerCycleDelete; i++ {
			key := keys[rng.Intn(len(keys))]

			if err := c.Delete(key); err != nil && err != client.ErrNotFound {
				fmt.Printf("[worker %d] DEL error: %v\n", id, err)
				return
			}
		}

		for i := 0; i < keysPerCycleWrite/2; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := c.Put(key, val); err != nil {
				fmt.Printf("[worker %d] rewrite error: %v\n", id, err)
				return
			}
		}

		if cycle%progressEvery == 0 {
			fmt.Printf("[worker %d] completed %d cycles\n", id, cycle)
		}

		if sleepBetweenCycles > 0 {
			time.Sleep(sleepBetweenCycles)
		}
	}
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%03d", i)
	}
	return keys
}

func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value-%03d-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", i)
	}
	return values
}
