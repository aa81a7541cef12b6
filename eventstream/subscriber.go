// MIT License
//
// Copyright (c) 2026 Stagehand Engine Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package eventstream

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/stagehand-engine/stagehand/internal/queue"
)

// Subscriber is one consumer attached to a Stream. Each subscriber owns its
// message queue, so a slow or stopped observer never blocks another.
//
// The unexported methods keep implementations inside this package:
// subscribers are created by a Stream via AddSubscriber.
type Subscriber interface {
	ID() string
	Active() bool
	Topics() []string
	Iterator() chan *Message
	Shutdown()

	signal(message *Message)
	subscribe(topic string)
	unsubscribe(topic string)
}

type subscriber struct {
	id string

	mu     sync.Mutex
	topics map[string]bool

	messages *queue.Queue[*Message]
	active   atomic.Bool
}

var _ Subscriber = (*subscriber)(nil)

func newSubscriber() *subscriber {
	x := &subscriber{
		id:       uuid.NewString(),
		topics:   make(map[string]bool),
		messages: queue.New[*Message](),
	}
	x.active.Store(true)
	return x
}

// ID returns the subscriber's unique identifier.
func (x *subscriber) ID() string {
	return x.id
}

// Active reports whether the subscriber still receives messages.
func (x *subscriber) Active() bool {
	return x.active.Load()
}

// Topics returns the topics the subscriber is attached to.
func (x *subscriber) Topics() []string {
	x.mu.Lock()
	defer x.mu.Unlock()

	topics := make([]string, 0, len(x.topics))
	for topic := range x.topics {
		topics = append(topics, topic)
	}
	return topics
}

// Shutdown stops message delivery. Already queued messages stay readable
// through Iterator.
func (x *subscriber) Shutdown() {
	x.active.Store(false)
}

// Iterator drains the messages buffered at the time of invocation and
// returns them through a closed channel. Messages enqueued concurrently
// with the call may be missed; call again to pick them up.
func (x *subscriber) Iterator() chan *Message {
	n := x.messages.Len()
	out := make(chan *Message, n)
	for i := 0; i < n; i++ {
		message, ok := x.messages.Pop()
		if !ok {
			break
		}
		out <- message
	}
	close(out)
	return out
}

func (x *subscriber) signal(message *Message) {
	if x.active.Load() {
		x.messages.Push(message)
	}
}

func (x *subscriber) subscribe(topic string) {
	x.mu.Lock()
	x.topics[topic] = true
	x.mu.Unlock()
}

func (x *subscriber) unsubscribe(topic string) {
	x.mu.Lock()
	delete(x.topics, topic)
	x.mu.Unlock()
}
