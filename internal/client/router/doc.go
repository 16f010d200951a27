// Package router holds the client's route table and the navigation guard
// that runs before every transition.
//
// Public routes are /login and /register. Every other path, including paths
// that match no route, needs an authenticated session; an anonymous visitor
// is sent to /login and the path they asked for is remembered so a later
// login can return them there.
package router
