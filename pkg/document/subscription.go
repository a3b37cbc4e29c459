package document

import "sync/atomic"

// Subscription represents an active listener registration on a document
// object. Subscriptions are returned by the Subscribe methods and stay
// active until canceled.
type Subscription struct {
	owner    subscriptionOwner
	canceled atomic.Bool
}

// subscriptionOwner is the list a subscription detaches itself from.
type subscriptionOwner interface {
	remove(sub *Subscription)
}

// Cancel stops the subscription. It is idempotent and safe to call from
// inside a notification callback.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		s.owner.remove(s)
	}
}

// IsCanceled returns true if this subscription has been canceled.
func (s *Subscription) IsCanceled() bool {
	return s.canceled.Load()
}

// notifier dispatches no-payload notifications (attribute changes,
// order-key changes, collection swaps).
type notifier struct {
	subs []notifierEntry
}

type notifierEntry struct {
	sub *Subscription
	fn  func()
}

func (n *notifier) subscribe(fn func()) *Subscription {
	sub := &Subscription{owner: n}
	n.subs = append(n.subs, notifierEntry{sub: sub, fn: fn})
	return sub
}

func (n *notifier) remove(sub *Subscription) {
	for i, e := range n.subs {
		if e.sub == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
}

// notify invokes every live subscriber. The list is copied first so
// callbacks may cancel or subscribe without corrupting the dispatch.
func (n *notifier) notify() {
	if len(n.subs) == 0 {
		return
	}
	entries := make([]notifierEntry, len(n.subs))
	copy(entries, n.subs)
	for _, e := range entries {
		if !e.sub.IsCanceled() && e.fn != nil {
			e.fn()
		}
	}
}

// childNotifier dispatches child add/remove notifications for a ChildList.
type childNotifier struct {
	subs []childEntry
}

type childEntry struct {
	sub *Subscription
	fn  func(Node)
}

func (n *childNotifier) subscribe(fn func(Node)) *Subscription {
	sub := &Subscription{owner: n}
	n.subs = append(n.subs, childEntry{sub: sub, fn: fn})
	return sub
}

func (n *childNotifier) remove(sub *Subscription) {
	for i, e := range n.subs {
		if e.sub == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
}

func (n *childNotifier) notify(child Node) {
	if len(n.subs) == 0 {
		return
	}
	entries := make([]childEntry, len(n.subs))
	copy(entries, n.subs)
	for _, e := range entries {
		if !e.sub.IsCanceled() && e.fn != nil {
			e.fn(child)
		}
	}
}
