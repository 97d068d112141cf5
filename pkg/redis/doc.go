// Package redis connects to Redis with go-redis/v9.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Healthcheck turns the client into a readiness probe.
package redis
