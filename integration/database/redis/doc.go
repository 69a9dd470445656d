// Package redis connects to the Redis instance backing the token store.
//
// Connect pings the server every RetryInterval until it answers or
// ConnectTimeout passes, so an application started alongside Redis waits
// for it instead of failing. The address comes from REDIS_URL or, when that
// is empty, from SESSION_STORE_HOST, SESSION_STORE_PORT and SESSION_PASS.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg, log)
//	if err != nil {
//		return err // ErrNotReady: treat as fatal
//	}
//	store := tokenstore.NewRedisStore(client)
package redis
