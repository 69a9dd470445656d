// Package verification issues single-use email verification tokens.
//
// A token maps to the user it was issued for through a record
// {"user_id": "<uuid>"} stored under "email-verification:{token}" for
// 24 hours by default. Consume resolves and deletes it in one call.
package verification
