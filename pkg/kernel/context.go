package kernel

// AuthContext is the authenticated identity injected into each request.
type AuthContext struct {
	UserID UserID `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// IsValid reports whether the context carries a usable identity.
func (ac *AuthContext) IsValid() bool {
	return ac != nil && !ac.UserID.IsEmpty()
}

// AuthLocalKey is the Fiber locals key the auth middleware stores the
// AuthContext under.
const AuthLocalKey = "auth"
