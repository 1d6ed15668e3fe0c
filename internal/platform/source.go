package platform

// Source produces raw samples for the tick loop.
type Source interface {
	// Poll appends every sample that arrived since the last call to dst
	// and returns the extended slice. It must not block.
	Poll(dst []Sample) []Sample
}

// Handler consumes samples. It reports whether a subscriber handled the sample.
type Handler interface {
	HandleSample(s Sample) bool
}

// Queue is a FIFO Source fed by Push. It is not safe for concurrent use;
// back-ends that read on another goroutine hand samples over through a
// channel and push them on the tick goroutine.
type Queue struct {
	pending []Sample
}

// Push appends samples to the queue.
func (q *Queue) Push(samples ...Sample) {
	q.pending = append(q.pending, samples...)
}

// Len returns the number of queued samples.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Poll implements Source.
func (q *Queue) Poll(dst []Sample) []Sample {
	dst = append(dst, q.pending...)
	clear(q.pending)
	q.pending = q.pending[:0]
	return dst
}

// Merge returns a Source that polls each source in order every frame.
func Merge(sources ...Source) Source {
	return merged(sources)
}

type merged []Source

func (m merged) Poll(dst []Sample) []Sample {
	for _, s := range m {
		dst = s.Poll(dst)
	}
	return dst
}
