// Package jobs provides the timed background work of the order lifecycle.
//
// LifecycleScheduler keeps a due-queue of status advances keyed by
// (order, target status). Creating an order queues its schedule:
//
//	delivery: +60s preparing "Kitchen", +180s delivering "En route", +300s completed "Delivered"
//	pickup:   +60s preparing "Kitchen", +180s completed "Ready for pickup"
//
// Offsets count from the order's createdAt, so steps of orders resumed after a
// restart that are already overdue fire on the next run, in order.
//
// # Usage
//
//	scheduler := jobs.NewLifecycleScheduler(advanceHandler, clock.NewReal(), logger)
//	scheduler.Resume(ctx, activeOrders)
//
//	jobManager := jobs.NewJobManager(scheduler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// LifecycleJob uses the cron expression "* * * * * *", so a step fires at most about
// one second after it is due. Tests call RunDue directly with a fake clock.
//
// # Error Handling
//
// A step for a cancelled, completed or already advanced order is a no-op. A step
// whose advance fails (the store is unavailable) is logged and queued again.
package jobs
