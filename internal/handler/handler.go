package handler

import "net/http"

// The gateway in front of this service authenticates the caller and injects
// the owner identity as a header; an empty value is rejected by the services
// as unauthenticated.
const userIDHeader = "X-User-ID"

func requestUserID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}
