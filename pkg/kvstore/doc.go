/*
Package kvstore exposes a remote key-value service as futures compatible
with the goasync executors.

The client wraps a go-redis connection (anything satisfying CommandRunner)
and turns each get/set into a Request, a future that suspends until the
command completes on a background goroutine:

	client, err := kvstore.New(redis.NewClient(&redis.Options{Addr: "localhost:6379"}))
	if err != nil {
		log.Fatal(err)
	}

	exec := executor.New()
	exec.Spawn(future.Then(client.Set("greeting", "hello"), func(any) future.Future {
		return future.Then(client.Get("greeting"), func(v any) future.Future {
			resp := v.(kvstore.Response)
			fmt.Println(resp.Value, resp.Err)
			return future.Value(nil)
		})
	}))
	exec.Run()

Errors are values: a failed command resolves to a Response carrying the
error (use IsNotFound for missing keys). The executor only ever sees ready
versus pending.
*/
package kvstore
