// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axis

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
)

type InterpreterFactory func(config any) (Interpreter, error)

// registry maps case insensitive names to interpreter factories.
type registry struct {
	mutex     sync.RWMutex
	factories map[string]InterpreterFactory
}

var interpreters = registry{factories: map[string]InterpreterFactory{}}

func (r *registry) get(name string) InterpreterFactory {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.factories[strings.ToLower(name)]
}

func (r *registry) add(name string, factory InterpreterFactory) error {
	key := strings.ToLower(name)
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for %q", key)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, found := r.factories[key]; found {
		return fmt.Errorf("interpreter %q is already registered", key)
	}
	r.factories[key] = factory
	return nil
}

// GetInterpreter returns the interpreter registered under the given name
// using its default configuration, or nil if there is none.
func GetInterpreter(name string) Interpreter {
	res, err := NewInterpreter(name)
	if err != nil {
		return nil
	}
	return res
}

// NewInterpreter creates an instance of the interpreter registered under
// the given name. An optional configuration is forwarded to the factory.
func NewInterpreter(name string, config ...any) (Interpreter, error) {
	if len(config) > 1 {
		return nil, fmt.Errorf("expected at most one configuration, got %d", len(config))
	}
	factory := interpreters.get(name)
	if factory == nil {
		return nil, fmt.Errorf("interpreter not found: %s", name)
	}
	var c any
	if len(config) == 1 {
		c = config[0]
	}
	return factory(c)
}

// GetInterpreterFactory returns the factory registered under the given name,
// nil if there is none. Names are case insensitive.
func GetInterpreterFactory(name string) InterpreterFactory {
	return interpreters.get(name)
}

// GetAllRegisteredInterpreters returns a copy of the registry.
func GetAllRegisteredInterpreters() map[string]InterpreterFactory {
	interpreters.mutex.RLock()
	defer interpreters.mutex.RUnlock()
	return maps.Clone(interpreters.factories)
}

// RegisterInterpreterFactory makes an interpreter available under the given
// name. Registering a name twice is an error.
func RegisterInterpreterFactory(name string, factory InterpreterFactory) error {
	return interpreters.add(name, factory)
}
