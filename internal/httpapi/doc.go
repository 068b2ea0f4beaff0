// Package httpapi implements the HTTP transport collaborator described in
// spec.md §6: /health, POST /add_batch/, GET /stats/, and (domain-stack
// addition, see SPEC_FULL.md §3) GET /metrics.
//
// Routing and JSON decoding are built on github.com/gin-gonic/gin rather
// than the teacher's raw http.ServeMux, grounded in
// jinterlante1206-AleutianLocal's services (the one full teacher-pack repo
// that runs production HTTP APIs). The handler shape — one function per
// route, a request struct decoded from the body, a Kind -> status mapping
// for errors — follows the teacher's cmd/coordinator and cmd/node handlers
// directly.
package httpapi
