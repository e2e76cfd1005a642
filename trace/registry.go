package trace

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Registry assigns every function a stable slot, used for its color and guide
// row. Slots follow first appearance in the log and do not depend on call depth.
type Registry struct {
	slots *orderedmap.OrderedMap[string, int]
}

func NewRegistry(log *Log) *Registry {
	reg := &Registry{
		slots: orderedmap.New[string, int](orderedmap.WithCapacity[string, int](log.Len())),
	}
	log.Each(func(function string, _ []Record) {
		reg.add(function)
	})
	return reg
}

func (reg *Registry) add(function string) {
	if _, ok := reg.slots.Get(function); ok {
		return
	}
	reg.slots.Set(function, reg.slots.Len())
}

// Slot returns the slot of function.
func (reg *Registry) Slot(function string) (int, bool) {
	return reg.slots.Get(function)
}

func (reg *Registry) Len() int { return reg.slots.Len() }

// Names returns the registered functions ordered by slot.
func (reg *Registry) Names() []string {
	names := make([]string, 0, reg.slots.Len())
	for pair := reg.slots.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
