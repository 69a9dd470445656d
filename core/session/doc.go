// Package session manages authenticated user sessions stored in a
// tokenstore.Store.
//
// A session record lives under "session:{token}" and slides: every
// successful Resolve resets its TTL. A secondary index under
// "user_to_sess:{user id}" points at the user's current session token, so a
// new login tears down the previous session before writing the new one and
// each user has at most one live session.
//
//	sess, err := mgr.CreateAndActivate(ctx, session.User{ID: id, Username: "alice", Email: "a@example.com"})
//	if err != nil {
//		return err
//	}
//	if err := mgr.SetCookie(w, sess); err != nil {
//		return err
//	}
//
//	// later requests
//	sess, err := mgr.Resolve(ctx, mgr.TokenFromRequest(r))
//	if errors.Is(err, session.ErrInvalidSession) {
//		// redirect to login
//	}
//
// Without WithActivationLock two concurrent logins of the same user may both
// survive until one of them expires; the lock serialises activation through
// a short-lived SET NX key.
package session
