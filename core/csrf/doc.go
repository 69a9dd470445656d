// Package csrf issues and validates anti-forgery tokens.
//
// Two flows are supported. A session-bound token is generated once per
// session, stored inside the session record and compared against the
// submitted value without touching the store. A session-less token (for
// anonymous forms such as login and registration) is written to the store
// under "temp-csrf:{token}" with a short TTL and checked for existence on
// submit.
//
//	tok, err := mgr.CreateSessionless(ctx)
//	// ... render tok into the form field named csrf.FieldName ...
//	if err := mgr.ValidateSessionless(ctx, submitted); errors.Is(err, csrf.ErrInvalid) {
//		// reject the form
//	}
//	mgr.ExpireSessionless(ctx, submitted) // single use
package csrf
