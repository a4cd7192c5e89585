package testutil

import (
	"net/http"

	"github.com/google/uuid"

	id "custodia/pkg/domain"
	"custodia/pkg/requestcontext"
)

// AsRole attaches a caller role to the request context, the way the auth
// middleware would for an authenticated request.
func AsRole(req *http.Request, role id.Role) *http.Request {
	ctx := requestcontext.WithRole(req.Context(), role)
	return req.WithContext(ctx)
}

// AsUser attaches both a role and an actor ID. This is the typical state of
// an authenticated request.
func AsUser(req *http.Request, role id.Role, userID id.UserID) *http.Request {
	ctx := requestcontext.WithRole(req.Context(), role)
	ctx = requestcontext.WithUserID(ctx, userID)
	return req.WithContext(ctx)
}

// AsSomeUser attaches a role with a fresh random actor ID, for tests that do
// not care who the actor is.
func AsSomeUser(req *http.Request, role id.Role) *http.Request {
	return AsUser(req, role, id.UserID(uuid.New()))
}
