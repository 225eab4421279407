// Package redis opens go-redis clients from environment configuration.
//
//	client, err := redis.Connect(ctx, redis.Config{URL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Connect pings the server and retries with a linearly growing delay, so a service
// starting next to a Redis container does not fail on the first refused dial.
package redis
