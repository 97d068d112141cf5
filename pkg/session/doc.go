// Package session keeps per-visitor state for the storefront: the logged-in
// customer, the administrator flag, the form challenge token and queued
// flash messages.
//
// A Manager combines a Store (MemoryStore or RedisStore) with a Transport
// (CookieTransport by default). Manager.Middleware loads or starts the
// session, stores it in the request context and saves it after the handler
// when it changed:
//
//	mgr := session.New(
//	    session.WithConfig(cfg),
//	    session.WithStore(session.NewRedisStore(rdb, cfg.RedisPrefix)),
//	)
//	r.Use(mgr.Middleware)
//
// Handlers read it with FromContext. Every session carries a random
// challenge token that forms echo back; CheckChallenge compares it in
// constant time.
package session
