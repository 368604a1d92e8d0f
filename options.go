package casky

// Options configures an Engine at Open time.
type Options struct {
	// SyncOnWrite, when true, fsyncs the log after every mutation before
	// acknowledging it to the caller. Default false.
	SyncOnWrite bool

	// ThreadSafe selects the concurrency discipline described in §5. When
	// true (the default here), a single mutex serialises put/get/delete/
	// compact/expire end-to-end; statistics use an independent mutex.
	// When false, the caller must serialise all access externally.
	ThreadSafe bool

	// MaxRecordBytes is the sanity ceiling applied to a declared key or
	// value length while decoding. Zero selects record.DefaultMaxBytes.
	MaxRecordBytes int
}

// DefaultOptions returns Casky's default configuration: no forced
// fsync, thread-safe mode enabled, the default 64 MiB record ceiling.
// Go has no build-time equivalent of the original's -DTHREAD_SAFE
// flag, so the choice becomes a runtime default instead; callers that
// want the original uncontended-throughput mode and will serialise
// access externally can opt out with WithThreadSafe(false).
func DefaultOptions() Options {
	return Options{
		SyncOnWrite: false,
		ThreadSafe:  true,
	}
}

// Option mutates Options; passed variadically to Open.
type Option func(*Options)

// WithSyncOnWrite toggles fsync-on-every-write durability.
func WithSyncOnWrite(sync bool) Option {
	return func(o *Options) { o.SyncOnWrite = sync }
}

// WithThreadSafe toggles the engine's internal mutex.
func WithThreadSafe(safe bool) Option {
	return func(o *Options) { o.ThreadSafe = safe }
}

// WithMaxRecordBytes overrides the per-field decode sanity ceiling.
func WithMaxRecordBytes(n int) Option {
	return func(o *Options) { o.MaxRecordBytes = n }
}
