package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/mergington/internal/adapters/mq/queue"
	"github.com/okian/mergington/internal/adapters/mq/worker"
	"github.com/okian/mergington/internal/domain/journal"
	"github.com/okian/mergington/internal/domain/model"
	logging "github.com/okian/mergington/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockQueue struct {
	events chan model.RosterEvent
	once   sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{events: make(chan model.RosterEvent, 10)}
}

func (mq *mockQueue) Dequeue() <-chan model.RosterEvent {
	return mq.events
}

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.events) })
	return nil
}

type mockSink struct {
	mu       sync.Mutex
	recorded []model.RosterEvent
	failFor  map[string]error
}

func newMockSink() *mockSink {
	return &mockSink{failFor: make(map[string]error)}
}

func (ms *mockSink) Record(_ context.Context, e model.RosterEvent) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if err, ok := ms.failFor[e.ID]; ok {
		return err
	}
	ms.recorded = append(ms.recorded, e)
	return nil
}

func (ms *mockSink) count() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.recorded)
}

func (ms *mockSink) failOn(id string, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failFor[id] = err
}

func (ms *mockSink) ids() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]string, 0, len(ms.recorded))
	for _, e := range ms.recorded {
		out = append(out, e.ID)
	}
	return out
}

func signedUp(id string) model.RosterEvent {
	return model.RosterEvent{
		ID:       id,
		Kind:     model.EventSignedUp,
		Activity: "Chess Club",
		Email:    id + "@mergington.edu",
		At:       time.Now(),
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		sink := newMockSink()

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(q, sink, worker.WithName("test-worker"), worker.WithLogger(logging.Named("test")))

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(q, sink)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)

			convey.Convey("And when processing events", func() {
				q.events <- signedUp("event-1")

				convey.Convey("Then the sink should receive them", func() {
					convey.So(waitFor(func() bool { return sink.count() == 1 }), convey.ShouldBeTrue)
				})
			})

			convey.Convey("And when the sink fails", func() {
				sink.failOn("bad", errors.New("boom"))
				q.events <- signedUp("bad")
				q.events <- signedUp("good")

				convey.Convey("Then the worker keeps going", func() {
					convey.So(waitFor(func() bool { return sink.count() == 1 }), convey.ShouldBeTrue)
					convey.So(sink.ids(), convey.ShouldResemble, []string{"good"})
				})
			})

			convey.Convey("And when the queue closes", func() {
				_ = q.Close()

				convey.Convey("Then Run returns", func() {
					select {
					case <-w.Done():
					case <-time.After(time.Second):
						t.Fatal("worker did not stop after queue close")
					}
				})
			})
		})

		convey.Convey("When context is cancelled", func() {
			w := worker.NewInMemoryWorker(q, sink)
			ctx, cancel := context.WithCancel(context.Background())
			go w.Run(ctx)
			cancel()

			convey.Convey("Then worker should stop", func() {
				select {
				case <-w.Done():
				case <-time.After(time.Second):
					t.Fatal("worker did not stop after cancel")
				}
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool writing into a journal", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		j := journal.New(journal.WithMaxSize(100))

		convey.Convey("When creating a pool with a non-positive count", func() {
			p := worker.NewPool(0, q, j)

			convey.Convey("Then it falls back to the default size", func() {
				convey.So(p.Size(), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When events are enqueued and the pool shuts down", func() {
			p := worker.NewPool(4, q, j)
			ctx := context.Background()
			p.Start(ctx)
			p.Start(ctx)

			for i := 0; i < 50; i++ {
				convey.So(q.Enqueue(ctx, signedUp(fmt.Sprintf("evt-%d", i))), convey.ShouldBeTrue)
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			err := p.Shutdown(shutdownCtx)

			convey.Convey("Then every buffered event reaches the journal", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(j.Size(), convey.ShouldEqual, 50)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})
	})
}
