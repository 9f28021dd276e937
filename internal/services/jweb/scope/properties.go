package scope

import (
	"sort"
	"sync"
)

// Source names the transport that opened a scope.
type Source string

const (
	SourceUnknown   Source = ""
	SourceHTTP      Source = "http"
	SourceWebSocket Source = "websocket"
)

// Well-known property keys populated for each HTTP-dispatched scope.
const (
	PropertyRoutingContext     = "RoutingContext"
	PropertyHTTPServerRequest  = "HttpServerRequest"
	PropertyHTTPServerResponse = "HttpServerResponse"
	PropertyStreamID           = "StreamId"
)

// Properties is the string-keyed bag of request values for one scope.
type Properties struct {
	mu     sync.RWMutex
	source Source
	values map[string]any
}

func newProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// SetSource records the transport that opened the scope.
func (p *Properties) SetSource(source Source) {
	p.mu.Lock()
	p.source = source
	p.mu.Unlock()
}

// Source returns the transport that opened the scope.
func (p *Properties) Source() Source {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

// Put stores value under key.
func (p *Properties) Put(key string, value any) {
	p.mu.Lock()
	if p.values != nil {
		p.values[key] = value
	}
	p.mu.Unlock()
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	value, ok := p.values[key]
	return value, ok
}

// String returns the value under key when it is a string.
func (p *Properties) String(key string) string {
	value, ok := p.Get(key)
	if !ok {
		return ""
	}
	text, _ := value.(string)
	return text
}

// Keys returns the stored keys in sorted order.
func (p *Properties) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.values))
	for key := range p.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (p *Properties) clear() {
	p.mu.Lock()
	p.values = nil
	p.mu.Unlock()
}
