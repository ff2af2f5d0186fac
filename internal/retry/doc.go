// Package retry repeats database connection attempts that fail for
// transient reasons, waiting with exponential backoff between attempts.
//
//	executor := retry.NewExecutor(3, retry.NewBackoff(100*time.Millisecond, 10*time.Second))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    conn, err = pgx.Connect(ctx, connString)
//	    return err
//	})
//
// IsTransient treats refused or reset connections, DNS hiccups, server
// start-up and shutdown states and connection-limit errors as retryable.
// Everything else, authentication failures included, ends the loop at once.
package retry
