package tree

// Attrs is an insertion-ordered attribute bag. Values are typed (string,
// int, float64, bool) when the owning kind declares a spec for them, raw
// strings otherwise.
type Attrs struct {
	keys []string
	vals map[string]any
}

// Get returns the value stored under key.
func (a *Attrs) Get(key string) (any, bool) {
	if a.vals == nil {
		return nil, false
	}
	v, ok := a.vals[key]
	return v, ok
}

// Set stores a value, keeping first-insertion order for new keys.
func (a *Attrs) Set(key string, value any) {
	if a.vals == nil {
		a.vals = make(map[string]any)
	}
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = value
}

// Delete removes a key and reports whether it was present.
func (a *Attrs) Delete(key string) bool {
	if a.vals == nil {
		return false
	}
	if _, ok := a.vals[key]; !ok {
		return false
	}
	delete(a.vals, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	return len(a.keys)
}
