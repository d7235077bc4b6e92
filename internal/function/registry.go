package function

import "sort"

// ============================================================
// Function registry
// ============================================================

// Function is a plotted user function. Index is stable for the
// function's lifetime and survives persistence.
type Function struct {
	Index   int
	Source  string
	Visible bool
	Fn      Callable
}

// Registry holds plotted functions keyed by index. Indices come from a
// monotonic allocator, so deleting a function never renumbers the rest.
type Registry struct {
	items map[int]*Function
	next  int
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[int]*Function)}
}

// Add compiles text and stores it under the next free index. Nothing is
// stored when compilation fails.
func (r *Registry) Add(text string) (*Function, error) {
	compiled, err := Compile(text)
	if err != nil {
		return nil, err
	}

	f := &Function{
		Index:   r.next,
		Source:  text,
		Visible: true,
		Fn:      compiled,
	}
	r.items[f.Index] = f
	r.next++
	return f, nil
}

// Restore recompiles text under a fixed index, replacing any function
// already stored there. The allocator moves past index.
func (r *Registry) Restore(index int, text string, visible bool) (*Function, error) {
	compiled, err := Compile(text)
	if err != nil {
		return nil, err
	}

	f := &Function{
		Index:   index,
		Source:  text,
		Visible: visible,
		Fn:      compiled,
	}
	r.items[index] = f
	if index >= r.next {
		r.next = index + 1
	}
	return f, nil
}

func (r *Registry) Delete(index int) bool {
	if _, ok := r.items[index]; !ok {
		return false
	}
	delete(r.items, index)
	return true
}

func (r *Registry) SetVisible(index int, visible bool) bool {
	f, ok := r.items[index]
	if !ok {
		return false
	}
	f.Visible = visible
	return true
}

func (r *Registry) Get(index int) (*Function, bool) {
	f, ok := r.items[index]
	return f, ok
}

// All returns every function in ascending index order.
func (r *Registry) All() []*Function {
	out := make([]*Function, 0, len(r.items))
	for _, f := range r.items {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Visible returns the visible functions in ascending index order.
func (r *Registry) Visible() []*Function {
	all := r.All()
	out := all[:0]
	for _, f := range all {
		if f.Visible {
			out = append(out, f)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.items)
}

// NextIndex is the index the next Add will assign.
func (r *Registry) NextIndex() int {
	return r.next
}

// Clear drops every function and resets the allocator.
func (r *Registry) Clear() {
	r.items = make(map[int]*Function)
	r.next = 0
}
