// Package feedcache holds the latest generated feed document per report
// window. A window's document never outdates; it is only ever replaced by
// the next report cycle.
package feedcache

import (
	"math/rand"
	"sync"

	"github.com/openwx/wxcharts/feed"
)

type subscriber struct {
	callback func(feed.Window, *feed.Document)
	windows  []feed.Window
}

var cache = make(map[feed.Window]*feed.Document)
var cm = &sync.RWMutex{}

var subscribers = make(map[int64]*subscriber)
var sm = &sync.RWMutex{}

// Publish stores the latest document for a window and notifies
// subscribers.
func Publish(w feed.Window, doc *feed.Document) {
	cm.Lock()
	cache[w] = doc
	cm.Unlock()

	go notify(w, doc)
}

// Get returns the latest available document for a window, nil when no
// cycle has published one yet.
func Get(w feed.Window) *feed.Document {
	cm.RLock()
	defer cm.RUnlock()
	return cache[w]
}

// Subscribe registers a callback to be called each time a new document is
// published and right away with any currently cached documents. If windows
// are given, the callback is only called for those windows. It returns the
// id required for unsubscribing. It returns -1, if callback is nil.
func Subscribe(callback func(feed.Window, *feed.Document), windows ...feed.Window) int64 {
	if callback == nil {
		return -1
	}

	id := rand.Int63()

	s := subscriber{
		callback: callback,
		windows:  windows,
	}

	sm.Lock()
	subscribers[id] = &s
	sm.Unlock()

	go func() {
		cm.RLock()
		for w, doc := range cache {
			notifyOne(&s, w, doc)
		}
		cm.RUnlock()
	}()

	return id
}

// Unsubscribe the callback with the given id.
func Unsubscribe(id int64) {
	sm.Lock()
	delete(subscribers, id)
	sm.Unlock()
}

func notify(w feed.Window, doc *feed.Document) {
	sm.RLock()
	defer sm.RUnlock()
	for _, s := range subscribers {
		notifyOne(s, w, doc)
	}
}

func notifyOne(s *subscriber, w feed.Window, doc *feed.Document) {
	if len(s.windows) == 0 {
		go s.callback(w, doc)
		return
	}
	for _, sw := range s.windows {
		if sw == w {
			go s.callback(w, doc)
			return
		}
	}
}
