// Package memo keeps the latest classification of each environment.
//
// The classifier itself is stateless; Memo adds an explicit per-environment
// slot on top of it. Classify always recomputes and overwrites the slot, Last
// and Read serve readers until the next classification:
//
//	m := memo.New(memo.NewMemoryStore(memo.WithCapacity(10000)))
//	e, err := m.Classify(ctx, environmentID, oracle, sig)
//	...
//	version, err := m.Read(ctx, environmentID, classify.FieldBrowserVersion)
//
// MemoryStore is a bounded LRU with optional expiry. RedisStore and
// MongoStore share entries between replicas; both expire entries that are
// not overwritten within the TTL. Open picks one from Config.
package memo
