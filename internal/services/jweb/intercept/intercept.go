// Package intercept runs ordered hooks around AJAX and data calls.
package intercept

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
)

// AjaxCallInterceptor runs before an AJAX event fires.
type AjaxCallInterceptor interface {
	InterceptAjax(ctx context.Context, call *ajax.Call, resp *ajax.Response) error
	SortOrder() int
}

// DataCallInterceptor runs after a data component renders.
type DataCallInterceptor interface {
	InterceptData(ctx context.Context, call *ajax.Call, resp *ajax.Response) error
	SortOrder() int
}

// AjaxFunc adapts a function to AjaxCallInterceptor.
type AjaxFunc struct {
	Order int
	Fn    func(ctx context.Context, call *ajax.Call, resp *ajax.Response) error
}

// InterceptAjax implements AjaxCallInterceptor.
func (f AjaxFunc) InterceptAjax(ctx context.Context, call *ajax.Call, resp *ajax.Response) error {
	if f.Fn == nil {
		return nil
	}
	return f.Fn(ctx, call, resp)
}

// SortOrder implements AjaxCallInterceptor.
func (f AjaxFunc) SortOrder() int { return f.Order }

// DataFunc adapts a function to DataCallInterceptor.
type DataFunc struct {
	Order int
	Fn    func(ctx context.Context, call *ajax.Call, resp *ajax.Response) error
}

// InterceptData implements DataCallInterceptor.
func (f DataFunc) InterceptData(ctx context.Context, call *ajax.Call, resp *ajax.Response) error {
	if f.Fn == nil {
		return nil
	}
	return f.Fn(ctx, call, resp)
}

// SortOrder implements DataCallInterceptor.
func (f DataFunc) SortOrder() int { return f.Order }

type sortable interface {
	SortOrder() int
}

// ordered keeps hooks sorted by SortOrder, ties in registration order.
type ordered[T sortable] struct {
	mu    sync.RWMutex
	items []T
}

func (o *ordered[T]) add(item T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, item)
	sort.SliceStable(o.items, func(i, j int) bool {
		return o.items[i].SortOrder() < o.items[j].SortOrder()
	})
}

func (o *ordered[T]) snapshot() []T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}

// Chains holds the registered interceptors.
type Chains struct {
	ajax ordered[AjaxCallInterceptor]
	data ordered[DataCallInterceptor]
}

// NewChains returns empty interceptor chains.
func NewChains() *Chains {
	return &Chains{}
}

// AddAjax registers an AJAX call interceptor.
func (c *Chains) AddAjax(i AjaxCallInterceptor) {
	if i == nil {
		return
	}
	c.ajax.add(i)
}

// AddData registers a data call interceptor.
func (c *Chains) AddData(i DataCallInterceptor) {
	if i == nil {
		return
	}
	c.data.add(i)
}

// Ajax returns AJAX interceptors in run order.
func (c *Chains) Ajax() []AjaxCallInterceptor {
	return c.ajax.snapshot()
}

// Data returns data interceptors in run order.
func (c *Chains) Data() []DataCallInterceptor {
	return c.data.snapshot()
}

// RunAjax runs every AJAX interceptor, stopping at the first error.
func (c *Chains) RunAjax(ctx context.Context, call *ajax.Call, resp *ajax.Response) error {
	for idx, i := range c.Ajax() {
		if err := i.InterceptAjax(ctx, call, resp); err != nil {
			return fmt.Errorf("ajax interceptor %d: %w", idx, err)
		}
	}
	return nil
}

// RunData runs every data interceptor, stopping at the first error.
func (c *Chains) RunData(ctx context.Context, call *ajax.Call, resp *ajax.Response) error {
	for idx, i := range c.Data() {
		if err := i.InterceptData(ctx, call, resp); err != nil {
			return fmt.Errorf("data interceptor %d: %w", idx, err)
		}
	}
	return nil
}
