// Package httpx implements the HTTP plumbing shared by every endpoint: JSON
// POST round-trips for blocking calls and open-body POSTs for server-sent
// event streams. Both paths build requests the same way, so authorization,
// content negotiation and request logging behave identically regardless of
// execution style.
//
// Failures are classified into the taxonomy of the request package:
// network-level problems become [request.TransportError], non-2xx responses
// become [request.APIError] with the error envelope parsed, and undecodable
// bodies become [request.DecodeError].
package httpx
