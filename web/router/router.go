/*
 * Copyright 2024 Routs Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package router

import "github.com/Murilinho145SG/Routs/web/protocol"

// HandlerFunc handles one request. It may be invoked concurrently from
// independent connections, so it must not mutate captured state without
// its own synchronization.
type HandlerFunc func(w *protocol.Writer, r *protocol.Request)

// Middleware wraps a handler into a new handler of the same shape.
type Middleware func(next HandlerFunc) HandlerFunc

// Router maps literal paths to handlers. No patterns, no trailing-slash
// normalization. Registration happens single-threaded before serving
// starts; lookups during serving are read-only and need no locking.
type Router struct {
	routes map[string]HandlerFunc
}

func New() *Router {
	return &Router{
		routes: make(map[string]HandlerFunc),
	}
}

// HandleFunc installs handler for the exact path. Registering the same
// path again replaces the previous handler.
func (rt *Router) HandleFunc(path string, handler HandlerFunc) {
	rt.routes[path] = handler
}

// Handler looks up the handler for an exact path.
func (rt *Router) Handler(path string) (HandlerFunc, bool) {
	handler, ok := rt.routes[path]
	return handler, ok
}

// Clone makes a shallow copy: a new table pointing at the same handlers.
func (rt *Router) Clone() *Router {
	clone := New()
	for path, handler := range rt.routes {
		clone.routes[path] = handler
	}
	return clone
}

// Chain applies middlewares to a handler, the first middleware becoming
// the outermost wrapper.
func Chain(handler HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
