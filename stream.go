package globber

import "iter"

// Stream runs the Glob pipeline and yields entry records lazily. The
// sequence is single-pass and non-restartable; stopping iteration is the
// only cancellation. Validation errors are returned eagerly, and any
// error the pipeline would raise is yielded before the first entry.
func Stream(patterns any, opts *Options) (iter.Seq2[Entry, error], error) {
	req, err := newRequest(patterns, opts)
	if err != nil {
		return nil, err
	}
	return func(yield func(Entry, error) bool) {
		paths, err := req.collect()
		if err != nil {
			yield(Entry{}, err)
			return
		}
		entries, err := req.materialize(paths)
		if err != nil {
			yield(Entry{}, err)
			return
		}
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}, nil
}
