package main

import (
	"strings"
	"sync"

	"github.com/jogaaurora/aurora/core/session"
)

type authState interface {
	IsAuthenticated() bool
}

type access int

const (
	public access = iota
	private
	// guestOnly pages (the login form) send authenticated users home.
	guestOnly
)

type route struct {
	pattern string
	title   string
	access  access
}

var routes = []route{
	{pattern: session.LoginPath, title: "Login", access: guestOnly},
	{pattern: session.HomePath, title: "Início", access: private},
	{pattern: "/turmas", title: "Turmas", access: private},
	{pattern: "/turmas/:id", title: "Turma", access: private},
	{pattern: "/estudantes", title: "Estudantes", access: private},
	{pattern: "/estudantes/:id", title: "Estudante", access: private},
	{pattern: "/relatorios", title: "Relatórios", access: private},
	{pattern: "/saiba-mais", title: "Saiba mais", access: public},
}

// router resolves the page shown for a path, enforcing the private routes guard.
type router struct {
	auth authState

	mu      sync.RWMutex
	current string
	params  map[string]string
}

func newRouter() *router {
	return &router{current: session.LoginPath}
}

func (r *router) isAuthenticated() bool {
	return r.auth != nil && r.auth.IsAuthenticated()
}

// resolve returns the path actually shown for path and its route.
// Unknown paths fall back to home, or to the login page for anonymous users.
func (r *router) resolve(path string) (string, route, map[string]string) {
	path = cleanPath(path)
	rt, params, ok := match(path)
	switch {
	case !ok && r.isAuthenticated():
		return r.resolve(session.HomePath)
	case !ok:
		return r.resolve(session.LoginPath)
	case rt.access == private && !r.isAuthenticated():
		return r.resolve(session.LoginPath)
	case rt.access == guestOnly && r.isAuthenticated():
		return r.resolve(session.HomePath)
	}
	return path, rt, params
}

func (r *router) navigate(path string) {
	resolved, _, params := r.resolve(path)
	r.mu.Lock()
	r.current = resolved
	r.params = params
	r.mu.Unlock()
}

func (r *router) path() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *router) param(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.params[name]
}

func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path
}

func match(path string) (route, map[string]string, bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for _, rt := range routes {
		pSegs := strings.Split(strings.Trim(rt.pattern, "/"), "/")
		if len(pSegs) != len(segs) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i, ps := range pSegs {
			if strings.HasPrefix(ps, ":") {
				if segs[i] == "" {
					ok = false
					break
				}
				params[ps[1:]] = segs[i]
				continue
			}
			if ps != segs[i] {
				ok = false
				break
			}
		}
		if ok {
			return rt, params, true
		}
	}
	return route{}, nil, false
}
