package ecmastring

import "sync"

// frameStackPool recycles leaf iterator stacks.
var frameStackPool = sync.Pool{
	New: func() interface{} {
		s := make([]leafFrame, 0, 32)
		return &s
	},
}

func getFrameStack() *[]leafFrame {
	s := frameStackPool.Get().(*[]leafFrame)
	*s = (*s)[:0]
	return s
}

func putFrameStack(s *[]leafFrame) {
	if s == nil {
		return
	}
	// Only keep reasonably sized stacks
	if cap(*s) > 4096 {
		return
	}
	// Clear references
	for i := range *s {
		(*s)[i] = leafFrame{}
	}
	*s = (*s)[:0]
	frameStackPool.Put(s)
}
