/*
Client for the Ning network REST API (version 1.0).

[Client] wraps an [http.Client] and provides signed access to the versioned REST path space of a single Ning network (`/xn/rest/{subdomain}/1.0/...`). A client is always authenticated: [New] exchanges the account email and password for an OAuth token pair (see [Client.Login]) before returning, and every later request is signed with OAuth 1.0 HMAC-SHA1 using the consumer key/secret and that token pair.

[Client.Call] is the generic request method, with [Client.Get], [Client.Post], [Client.Put] and [Client.Delete] as shorthands. Request parameters are passed as [Params]. If the parameters include a "file" key, the request is sent as multipart/form-data and only the method and URL are covered by the signature; otherwise all parameters are signed and sent form-encoded (POST/PUT) or in the query string (GET/DELETE).

Responses use a uniform JSON envelope with a "success" flag. A successful envelope is returned as a [Result]; anything else becomes an error:

- [ConfigError] when required configuration is missing
- [AuthError] when login did not yield a token pair
- [TransportError] when the HTTP round trip failed or timed out
- [APIError] when the server reported failure or the body was not JSON

Resource handles ([Client.User], [Client.Photo], etc) are thin conveniences which prefix a fixed path and forward to [Client.Call].

The client performs no retries, caching, rate limiting or pagination. A single client may be shared between goroutines, but requests are independent; no ordering is implied.
*/
package client
