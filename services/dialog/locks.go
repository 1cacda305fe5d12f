package dialog

import "sync"

// senderLocks serializes message handling per sender, so concurrent webhook
// deliveries from one sender cannot interleave dialogue steps. Different
// senders never contend.
type senderLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (l *senderLocks) lock(sender string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sync.Mutex)
	}
	sm, ok := l.m[sender]
	if !ok {
		sm = &sync.Mutex{}
		l.m[sender] = sm
	}
	l.mu.Unlock()

	sm.Lock()
	return sm.Unlock
}
