package server

import (
	"context"
	"net/http"

	"tailscale.com/client/tailscale/apitype"
)

type contextKey int

const userInfoKey contextKey = iota

// UserInfo is the identity attached to each request. In tailnet mode it
// comes from a WhoIs lookup; otherwise a local dev identity is used.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

var devUser = UserInfo{Login: "local", DisplayName: "Local Dev User"}

// WhoIsClient is the slice of the tsnet local client the identity
// middleware needs.
type WhoIsClient interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// SetTailscale enables WhoIs-based identity resolution. Must be called
// before the server starts handling requests.
func (s *Server) SetTailscale(lc WhoIsClient) {
	s.lc = lc
}

// tailscaleIdentity resolves the caller's tailnet identity and stores it in
// the request context. Lookup failures fall back to the dev identity rather
// than failing the request; the tracker stays usable either way.
func (s *Server) tailscaleIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := devUser
		if s.lc != nil {
			if who, err := s.lc.WhoIs(r.Context(), r.RemoteAddr); err == nil && who.UserProfile != nil {
				info = UserInfo{
					Login:       who.UserProfile.LoginName,
					DisplayName: who.UserProfile.DisplayName,
				}
			}
		}
		ctx := context.WithValue(r.Context(), userInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info, ok := r.Context().Value(userInfoKey).(UserInfo)
	if !ok {
		info = devUser
	}
	writeJSON(w, http.StatusOK, info)
}
