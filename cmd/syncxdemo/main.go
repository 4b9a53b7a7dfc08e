// Command syncxdemo reproduces the SyncX sample driver: it fills a
// protected dataset with random values, computes which ones are
// unique, counts values divisible by a handful of factors, and times
// each round, alternating between a plain mutex (even rounds) and a
// readers/writer lock (odd rounds) so the two protection strategies can
// be compared head to head.
package main

import (
	"flag"
	"fmt"
	"log"
	"reflect"
	"time"

	"github.com/labasse/SyncX/barrier"
	"github.com/labasse/SyncX/config"
	"github.com/labasse/SyncX/internal/safedata"
	"github.com/labasse/SyncX/kernel"
	"github.com/labasse/SyncX/lockstrategy"
	"github.com/labasse/SyncX/taskqueue"
)

const (
	priorityFill    = 2
	priorityUniq    = 4
	priorityProcess = 5
)

func main() {
	log.SetFlags(0)

	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	rounds := flag.Int("rounds", 2, "number of mutex/rwlock comparison rounds to run")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	d := newDemo(cfg)
	defer d.close()

	for round := 0; round < *rounds; round++ {
		useMutex := round%2 == 0
		d.runRound(useMutex)
	}
}

func defaultConfig() *config.Config {
	return &config.Config{
		Dataset: config.DatasetConfig{Capacity: 2048, BlockSize: 256},
		Pool:    config.PoolConfig{QueueCapacity: 6, WorkerCount: 6},
		Timing:  config.TimingConfig{GeneratorPeriodMS: 200, PollPeriodMS: 50},
		Factors: []uint32{23, 31, 47, 79},
	}
}

type counter struct {
	factor uint32
	name   string
	count  int
}

type demo struct {
	cfg *config.Config

	b        *barrier.Barrier
	join     *kernel.Semaphore
	tasks    *taskqueue.TaskQueue
	workers  []*taskqueue.Worker
	dataset  *safedata.Dataset
	counters []*counter

	generatorPeriod time.Duration
	pollPeriod      time.Duration
}

func newDemo(cfg *config.Config) *demo {
	b, st := barrier.New("done", 2, kernel.DoInherit)
	if !st.Ok() {
		log.Fatalf("creating barrier: %s", st)
	}

	tasks, st := taskqueue.NewQueue("tasks", cfg.Pool.QueueCapacity)
	if !st.Ok() {
		log.Fatalf("creating task queue: %s", st)
	}

	d := &demo{
		cfg:             cfg,
		b:               b,
		join:            kernel.NewSemaphore(0, nil),
		tasks:           tasks,
		generatorPeriod: time.Duration(cfg.Timing.GeneratorPeriodMS) * time.Millisecond,
		pollPeriod:      time.Duration(cfg.Timing.PollPeriodMS) * time.Millisecond,
	}

	d.counters = make([]*counter, len(cfg.Factors))
	for i, f := range cfg.Factors {
		d.counters[i] = &counter{factor: f, name: fmt.Sprintf("...x%d", f)}
	}

	taskqueue.SetEnterExitNotify(d.joinCallback)

	for i := 0; i < cfg.Pool.WorkerCount; i++ {
		w, st := taskqueue.CreateRunner(fmt.Sprintf("th%d", i), tasks)
		if !st.Ok() {
			log.Fatalf("creating worker %d: %s", i, st)
		}
		d.workers = append(d.workers, w)
	}

	return d
}

func (d *demo) close() {
	d.tasks.Delete()
	d.b.Delete()
	d.join.Delete()
}

// joinCallback posts to the join semaphore every time a process task
// finishes, so runRound can wait for all of them without polling.
// Comparing the item's entry function by pointer mirrors the original
// driver's function-pointer identity check; Go work items carry a Go
// func value, which is only comparable to nil, not to another func
// value, so reflect.Value.Pointer is the idiomatic stand-in.
func (d *demo) joinCallback(item *taskqueue.WorkItem, started bool) {
	if started || item.Entry == nil {
		return
	}
	if reflect.ValueOf(item.Entry).Pointer() == reflect.ValueOf(d.taskProcess).Pointer() {
		d.join.Put()
	}
}

func (d *demo) joinCounters(count int) {
	for i := 0; i < count; i++ {
		d.join.Get(kernel.Forever)
	}
}

func (d *demo) runRound(useMutex bool) {
	var valuesLock, uniqueLock lockstrategy.Lock
	if useMutex {
		fmt.Println("MUTEX")
		valuesLock = lockstrategy.NewMutexLock(kernel.DoInherit)
		uniqueLock = lockstrategy.NewMutexLock(kernel.DoInherit)
	} else {
		fmt.Println("R/W LOCK")
		rw, st := lockstrategy.NewRWLockLock(kernel.DoInherit)
		if !st.Ok() {
			log.Fatalf("creating rwlock: %s", st)
		}
		uniqueRw, st := lockstrategy.NewRWLockLock(kernel.DoInherit)
		if !st.Ok() {
			log.Fatalf("creating rwlock: %s", st)
		}
		valuesLock, uniqueLock = rw, uniqueRw
	}

	d.dataset = safedata.New(d.cfg.Dataset.Capacity, valuesLock, uniqueLock)
	for _, c := range d.counters {
		c.count = 0
	}

	start := time.Now()

	d.tasks.Send(d.taskFillRandom, 0, priorityFill, priorityFill, kernel.NoWait)
	d.b.Wait(kernel.Forever)

	d.tasks.Send(d.taskUpdateUnique, 0, priorityUniq, priorityUniq, kernel.NoWait)
	for i := range d.counters {
		d.tasks.Send(d.taskProcess, uint64(i), priorityProcess+i, priorityProcess, kernel.NoWait)
	}

	d.joinCounters(len(d.counters))

	fmt.Printf("- Performance %v\n", time.Since(start))
	d.b.Reset()
}

func (d *demo) taskFillRandom(uint64) {
	d.dataset.Clear()
	d.b.Wait(kernel.Forever)

	capacity := d.dataset.Capacity()
	for generated := 0; generated < capacity; generated += d.cfg.Dataset.BlockSize {
		d.dataset.FillRandom(d.cfg.Dataset.BlockSize)
		printProgress("Generated", generated+d.cfg.Dataset.BlockSize, capacity)
		time.Sleep(d.generatorPeriod)
	}
}

func (d *demo) taskUpdateUnique(uint64) {
	capacity := d.dataset.Capacity()
	for updated := 0; updated < capacity; {
		checked := d.dataset.UniqueUpdate()
		if checked > 0 {
			updated += checked
			printProgress("Uniqueness", updated, capacity)
		} else {
			time.Sleep(d.pollPeriod)
		}
	}
}

func (d *demo) taskProcess(counterIndex uint64) {
	c := d.counters[counterIndex]
	fmt.Printf("- Process %d : start\n", counterIndex)

	capacity := d.dataset.Capacity()
	processed := 0
	for processed < capacity {
		visited := d.dataset.Browse(&processed, func(index int, value uint32) {
			if value%c.factor == 0 && d.dataset.UniqueCheck(index) == 1 {
				c.count++
				time.Sleep(2 * time.Millisecond)
			}
		})
		if visited > 0 {
			printProgress(c.name, processed, capacity)
		} else {
			time.Sleep(d.pollPeriod)
		}
	}
}

func printProgress(title string, quantity, capacity int) {
	fmt.Printf("- %s %d%%\n", title, quantity*100/capacity)
}
