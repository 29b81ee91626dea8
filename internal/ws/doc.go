// Package ws provides the WebSocket transport for the coordination hub.
//
// The package implements:
//   - Client: one connection with a buffered outbound queue drained by its
//     write pump, giving FIFO delivery per recipient
//   - Handler: upgrades HTTP requests, resolves the session id, and feeds
//     inbound frames to the hub's message router
//
// Handlers return once a send is queued; delivery is never awaited. A full
// outbound buffer or any transport error closes that client only and runs
// the hub's normal disconnect path.
package ws
