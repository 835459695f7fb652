// Package api provides the HTTP REST API for the Freecell server.
//
// Endpoints:
//
// Session Management:
//   - POST   /api/sessions                    create a session {config_id, seed}
//   - GET    /api/sessions                    list sessions (?sort=created|accessed&order=&limit=)
//   - GET    /api/sessions/{id}               session info with game state
//   - DELETE /api/sessions/{id}               delete a session
//
// Game Operations:
//   - GET  /api/sessions/{id}/state           current table
//   - POST /api/sessions/{id}/move            {card, to, from?}
//   - POST /api/sessions/{id}/bulk-move       {moves: [{card, to}, ...]}
//   - POST /api/sessions/{id}/snap            {card}
//   - POST /api/sessions/{id}/undo
//   - POST /api/sessions/{id}/redeal          {seed}
//   - POST /api/sessions/{id}/drop-targets    {card, candidates}
//   - GET  /api/sessions/{id}/history         (?page=&limit=&order=asc|desc)
//
// Configuration:
//   - GET  /api/configs                       list rule sets
//   - POST /api/configs                       save a rule set
//   - GET  /api/configs/{name}                load a rule set
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id}                    WebSocket upgrade
//
// A move the rules reject still answers 200 with success false and an
// attempted_to block explaining why. Errors use a JSON body {"error": "..."}:
// 400 for malformed requests, 404 for unknown sessions or configs and 409
// when a move names a card placement that is no longer current.
//
// Every state-changing handler broadcasts the new state and the engine events
// it produced to the session's WebSocket clients.
package api
