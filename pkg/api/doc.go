// Package api is the HTTP submission interface of the queue.
//
// POST /tasks/{variant} hands a task to the enqueuer and answers 202 once the
// intent is accepted into the persister's channel, before it is durable. The
// optional query parameter delay ("4s", "-10s" or whole seconds) offsets the due
// time from receipt; t sets an absolute unix time. Unknown variants get 404
// unknown_variant and a channel that stays full past API_SUBMIT_TIMEOUT gets
// 503 queue_full. With a Limiter in Deps, clients over their budget get 429
// rate_limited and a Retry-After header.
//
// Every answer uses the envelope {"code": ..., "data": ..., "error": {...}}.
package api
