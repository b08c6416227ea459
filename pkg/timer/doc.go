// Package timer provides time-based suspension sources for the goasync
// executors.
//
// Delay is a future that resolves once a deadline passes:
//
//	exec.Spawn(future.Then(timer.After(10*time.Millisecond), func(any) future.Future {
//		fmt.Println("tick")
//		return future.Value(nil)
//	}))
//
// Lifecycle of a Delay: created unarmed; the first poll that finds the
// deadline still ahead stores the waker and spawns one timing goroutine; the
// goroutine sleeps out the remaining duration, wakes the latest stored waker
// and exits. A deadline already in the past resolves on the first poll
// without spawning anything. Each in-flight Delay costs one goroutine rather
// than a slot in a shared timer heap.
//
// Cron builds a Delay for the next activation of a cron expression
// (six-field, seconds first):
//
//	d, err := timer.Cron("0 */5 * * * *", nil) // next five-minute boundary
//
// Metrics are opt-in, as everywhere in goasync. EnableMetrics records
// arm/fire counts for all delays under the goasync_timer subsystem:
//
//	timer.EnableMetrics(metrics.Config{Enabled: true})
package timer
