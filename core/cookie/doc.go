// Package cookie writes and reads HTTP cookies with shared defaults
// (Path "/", HttpOnly, SameSite=Strict), optional HMAC signing with secret
// rotation and one-shot flash values.
//
//	cm, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	_ = cm.Set(w, "SESSIONID", tok, cookie.WithMaxAge(7200))
//	_ = cm.SetFlash(w, "messages", flashes)
//
// Signed values are "base64url(value).base64url(hmac)". The first secret
// signs; every configured secret is tried when verifying.
package cookie
