// Package schedule applies rate limit configurations on cron schedules.
//
// Both limiter implementations in this module support in-place
// reconfiguration through UpdateConfig, so limits can change while
// callers keep acquiring against the same shared instance. This package
// automates that: each Window pairs a cron expression with a capacity
// and rate, and a Scheduler installs the window's configuration whenever
// its expression fires.
//
//	tb := bucket.New(1000, 100)
//
//	s, err := schedule.New(tb,
//		schedule.Window{Spec: "0 8 * * 1-5", Capacity: 1000, Rate: 100}, // business hours
//		schedule.Window{Spec: "0 20 * * *", Capacity: 200, Rate: 20},    // nights
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	s.Start()
//	defer s.Stop()
//
// Window parameters are validated when the window is added, with the
// same rules UpdateConfig enforces, so a window that could never install
// fails fast. Failures at fire time (and successful installs) can be
// observed through the OnError and OnApply hooks in Config.
package schedule
