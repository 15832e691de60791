package spacex

import "sync"

// Observable holds a current value and fans every published value out to its subscribers.
// Publish never blocks: each subscriber owns an unbounded queue drained by its own goroutine,
// so a slow reader only delays itself. Values reach a subscriber in publish order.
type Observable[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]*subscriber[T]
	nextID int
	closed bool
}

// NewObservable returns an observable whose current value is initial.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value: initial,
		subs:  make(map[int]*subscriber[T]),
	}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Publish replaces the current value and queues it for every subscriber.
// Publishing on a closed observable only updates the current value.
func (o *Observable[T]) Publish(value T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.value = value
	if o.closed {
		return
	}
	for _, sub := range o.subs {
		sub.push(value)
	}
}

// Subscribe returns a channel that first receives the current value and then every later publication.
// The cancel func stops delivery and closes the channel; it is safe to call more than once.
// Subscribing to a closed observable yields the current value followed by a closed channel.
func (o *Observable[T]) Subscribe() (<-chan T, func()) {
	sub := newSubscriber[T]()

	o.mu.Lock()
	sub.push(o.value)
	if o.closed {
		sub.finish()
		o.mu.Unlock()
		go sub.run()
		return sub.out, sub.cancel
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = sub
	o.mu.Unlock()

	go sub.run()

	var once sync.Once
	return sub.out, func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
			sub.cancel()
		})
	}
}

// Close delivers whatever is queued and then closes every subscriber channel.
func (o *Observable[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for id, sub := range o.subs {
		sub.finish()
		delete(o.subs, id)
	}
}

type subscriber[T any] struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []T
	finished bool
	stop     chan struct{}
	stopOnce sync.Once
	out      chan T
}

func newSubscriber[T any]() *subscriber[T] {
	s := &subscriber[T]{
		stop: make(chan struct{}),
		out:  make(chan T),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *subscriber[T]) push(value T) {
	s.mu.Lock()
	if !s.finished {
		s.queue = append(s.queue, value)
	}
	s.mu.Unlock()
	s.cond.Signal()
}

// finish lets the queue drain and then closes out.
func (s *subscriber[T]) finish() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
	s.cond.Signal()
}

// cancel drops the queue and closes out as soon as possible.
func (s *subscriber[T]) cancel() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.mu.Lock()
		s.finished = true
		s.queue = nil
		s.mu.Unlock()
		s.cond.Signal()
	})
}

func (s *subscriber[T]) run() {
	defer close(s.out)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.finished {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		value := s.queue[0]
		var zero T
		s.queue[0] = zero
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- value:
		case <-s.stop:
			return
		}
	}
}
