// Package token manages opaque random tokens whose JSON payloads live in a
// tokenstore.Store under "{prefix}:{token}" keys.
//
// A record exists only while its time-to-live has not elapsed; an absent
// record means the token is invalid or expired and the two cases are never
// distinguished. Store failures surface as one of ErrRead, ErrWrite,
// ErrRefresh or ErrExpiration, each of which also matches
// tokenstore.ErrUnavailable.
//
//	m := token.NewManager(store, token.Config{Length: 20, TTL: 24 * time.Hour, Prefix: "email-verification"})
//	tok := m.Generate()
//	if err := m.Write(ctx, tok, payload); err != nil {
//		return err
//	}
//
//	var p Payload
//	found, err := m.Read(ctx, tok, &p)
package token
