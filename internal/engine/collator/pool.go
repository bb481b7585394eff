package collator

import "sync"

// maxPooledUnits caps buffers kept in the pools.
const maxPooledUnits = 64 * 1024

// unitBufPool recycles UTF-16 scratch buffers for the slow path.
var unitBufPool = sync.Pool{
	New: func() interface{} {
		s := make([]uint16, 0, DefaultStackBufferUnits)
		return &s
	},
}

func getUnitBuf(capacity int) *[]uint16 {
	s := unitBufPool.Get().(*[]uint16)
	if cap(*s) < capacity {
		*s = make([]uint16, 0, capacity)
	} else {
		*s = (*s)[:0]
	}
	return s
}

func putUnitBuf(s *[]uint16) {
	if s == nil || cap(*s) > maxPooledUnits {
		return
	}
	*s = (*s)[:0]
	unitBufPool.Put(s)
}

// byteBufPool recycles UTF-8 transcoding buffers for the oracle.
var byteBufPool = sync.Pool{
	New: func() interface{} {
		s := make([]byte, 0, 3*DefaultStackBufferUnits)
		return &s
	},
}

func getByteBuf(capacity int) *[]byte {
	s := byteBufPool.Get().(*[]byte)
	if cap(*s) < capacity {
		*s = make([]byte, 0, capacity)
	} else {
		*s = (*s)[:0]
	}
	return s
}

func putByteBuf(s *[]byte) {
	if s == nil || cap(*s) > 3*maxPooledUnits {
		return
	}
	*s = (*s)[:0]
	byteBufPool.Put(s)
}
